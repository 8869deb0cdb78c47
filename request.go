// Package memfs contains the request types used to seed an in-memory
// filesystem tree. The tree itself lives in the filesystem package.
package memfs

// NodeRequest has common fields embedded in concrete request types
type NodeRequest struct {
	Path string // root-anchored, i.e. "docs/readme.txt"
	Type NodeCreateRequestType
	UUID string // Optional node identity; a fresh one is assigned when empty
}

// NodeCreateRequestType valid types are FileNodeType "file", DirNodeType "dir"
type NodeCreateRequestType string

const (
	FileNodeType NodeCreateRequestType = "file"
	DirNodeType  NodeCreateRequestType = "dir"
)

type FileCreateRequest struct {
	NodeRequest
	Content string
	Origin  string // media type, i.e. "text/plain"
}

type DirCreateRequest struct {
	NodeRequest
	Kind string
}
