package filesystem

import (
	"errors"
	"fmt"
)

// Structural errors. Lookups never return these; a missing node is reported
// as a nil result instead. Match with errors.Is.
var (
	ErrInvalidName     = errors.New("invalid name")
	ErrNameCollision   = errors.New("name already exists in directory")
	ErrSelfContainment = errors.New("directory cannot contain itself")
	ErrCycleDetected   = errors.New("directory cannot contain one of its ancestors")
)

// NodeError records the operation and node name that violated a tree invariant
type NodeError struct {
	Op   string // i.e. "rename", "insert"
	Name string
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

func newNodeError(op, name string, err error) error {
	return &NodeError{Op: op, Name: name, Err: err}
}
