package requests

import (
	"github.com/brettbedarf/memfs"
)

// NodeRequestDTO is the JSON/YAML representation of [memfs.NodeRequest]
type NodeRequestDTO struct {
	Path string                      `json:"path" yaml:"path"`
	Type memfs.NodeCreateRequestType `json:"type" yaml:"type"`
	UUID *string                     `json:"uuid,omitempty" yaml:"uuid,omitempty"` // Optional UUID to keep node identity stable across loads
}

// FileRequestDTO is the JSON/YAML representation of [memfs.FileCreateRequest]
type FileRequestDTO struct {
	NodeRequestDTO `yaml:",inline"`
	Content        *string `json:"content,omitempty" yaml:"content,omitempty"`
	// Origin is a media type such as "text/markdown" used to classify the file
	Origin *string `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// DirRequestDTO is the JSON/YAML representation of [memfs.DirCreateRequest]
type DirRequestDTO struct {
	NodeRequestDTO `yaml:",inline"`
	Kind           *string `json:"kind,omitempty" yaml:"kind,omitempty"`
}
