package filesystem

import (
	"strings"

	"github.com/google/uuid"
)

// Separator joins node names into a path
const Separator = "/"

// Node is an item in the tree: a [*File] or a [*Dir]. The set is closed;
// other packages cannot implement it.
type Node interface {
	// Name returns the node's name (last path component)
	Name() string

	// Owner returns the directory currently holding the node, or nil when
	// the node is detached or is the root
	Owner() *Dir

	// Path returns the owner's path joined with the node's name, or just the
	// name when there is no owner
	Path() string

	// ID returns the identity assigned when the node was created. Copies get
	// a new one.
	ID() uuid.UUID

	// Rename validates and sets a new name, re-keying the owner's children.
	// Fails with ErrInvalidName or ErrNameCollision and leaves the node
	// unchanged.
	Rename(newName string) error

	// Copy returns a detached deep copy named "<name> copy"
	Copy() Node

	base() *nodeBase
}

// nodeBase carries the identity and owner link shared by files and dirs
type nodeBase struct {
	name  string
	owner *Dir // non-owning back reference; the owner's children hold the node
	id    uuid.UUID
}

func newNodeBase(name string) (nodeBase, error) {
	clean, err := ValidateName(name)
	if err != nil {
		return nodeBase{}, newNodeError("create", name, err)
	}
	return nodeBase{name: clean, id: uuid.New()}, nil
}

func (n *nodeBase) base() *nodeBase {
	return n
}

func (n *nodeBase) Name() string {
	return n.name
}

func (n *nodeBase) Owner() *Dir {
	return n.owner
}

func (n *nodeBase) ID() uuid.UUID {
	return n.id
}

func (n *nodeBase) Path() string {
	if n.owner == nil {
		return n.name
	}
	return n.owner.Path() + Separator + n.name
}

func (n *nodeBase) Rename(newName string) error {
	name, err := ValidateName(newName)
	if err != nil {
		return newNodeError("rename", newName, err)
	}
	if name == n.name {
		return nil
	}
	if n.owner != nil {
		if n.owner.Has(name) {
			return newNodeError("rename", name, ErrNameCollision)
		}
		n.owner.rekey(n.name, name)
	}
	n.name = name
	return nil
}

// ValidateName trims surrounding whitespace and returns the name that would
// be stored. Blank names, names containing the separator and the reserved
// path segments "." and ".." fail with ErrInvalidName.
func ValidateName(name string) (string, error) {
	clean := strings.TrimSpace(name)
	if clean == "" || clean == "." || clean == ".." {
		return "", ErrInvalidName
	}
	if strings.Contains(clean, Separator) {
		return "", ErrInvalidName
	}
	return clean, nil
}

func copyName(name string) string {
	return name + " copy"
}
