package filesystem

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultFileName is used when a file is created with an empty name
const DefaultFileName = "un-named file"

// Default classification for files without an origin
const (
	DefaultFileKind    = "text"
	DefaultFileSubKind = "txt"
)

var subKindRe = regexp.MustCompile(`[\w-]+`)

// Origin describes where a file's content came from. Only the media type is
// used, to classify the file.
type Origin struct {
	Type string `json:"type" yaml:"type"` // i.e. "text/plain", "image/png"
}

// File is a leaf node holding text content
type File struct {
	nodeBase
	content string
	origin  *Origin
	kind    string
	subKind string
}

// NewFile creates a detached file. Any content value is stored as a string;
// nil becomes empty.
func NewFile(name string, content any, origin *Origin) (*File, error) {
	if name == "" {
		name = DefaultFileName
	}
	nb, err := newNodeBase(name)
	if err != nil {
		return nil, err
	}
	f := &File{nodeBase: nb}
	f.SetContent(content)
	f.SetOrigin(origin)
	return f, nil
}

func (f *File) Content() string {
	return f.content
}

// SetContent replaces the file's content with content's string form
func (f *File) SetContent(content any) {
	switch c := content.(type) {
	case nil:
		f.content = ""
	case string:
		f.content = c
	case []byte:
		f.content = string(c)
	default:
		f.content = fmt.Sprint(c)
	}
}

// Size returns the content length in bytes
func (f *File) Size() int {
	return len(f.content)
}

func (f *File) Origin() *Origin {
	return f.origin
}

// SetOrigin sets the origin and reclassifies the file from its media type.
// A nil origin or one without a type resets the classification to text/txt.
func (f *File) SetOrigin(origin *Origin) {
	f.origin = origin
	f.kind, f.subKind = DefaultFileKind, DefaultFileSubKind
	if origin == nil || origin.Type == "" {
		return
	}

	kind, sub, _ := strings.Cut(origin.Type, "/")
	if kind != "" {
		f.kind = kind
	}
	if m := subKindRe.FindString(sub); m != "" && m != "plain" {
		f.subKind = m
	}
}

// Kind is the coarse media class, i.e. "text" or "image"
func (f *File) Kind() string {
	return f.kind
}

// SubKind is the media subtype, with "plain" reported as "txt"
func (f *File) SubKind() string {
	return f.subKind
}

func (f *File) Copy() Node {
	var origin *Origin
	if f.origin != nil {
		o := *f.origin
		origin = &o
	}
	// name is already valid so this cannot fail
	c, _ := NewFile(copyName(f.name), f.content, origin)
	return c
}
