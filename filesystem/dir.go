package filesystem

import "slices"

// DefaultDirName is used when a directory is created with an empty name
const DefaultDirName = "un-named directory"

// DirKind tags a directory. Only the default kind exists for now.
type DirKind string

const DefaultDirKind DirKind = "DEFAULT"

var dirKinds = map[DirKind]bool{
	DefaultDirKind: true,
}

// Dir is a container node holding uniquely named children in insertion order
type Dir struct {
	nodeBase
	kind     DirKind
	children []Node        // insertion order
	index    map[string]int // child name -> position in children
}

// NewDir creates a detached, empty directory. Unknown kinds fall back to
// DefaultDirKind.
func NewDir(name string, kind DirKind) (*Dir, error) {
	if name == "" {
		name = DefaultDirName
	}
	nb, err := newNodeBase(name)
	if err != nil {
		return nil, err
	}
	if !dirKinds[kind] {
		kind = DefaultDirKind
	}
	return &Dir{
		nodeBase: nb,
		kind:     kind,
		index:    make(map[string]int),
	}, nil
}

func (d *Dir) Kind() DirKind {
	return d.kind
}

// Has reports whether a child with name exists
func (d *Dir) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Get returns the named child or nil
func (d *Dir) Get(name string) Node {
	if i, ok := d.index[name]; ok {
		return d.children[i]
	}
	return nil
}

// Len returns the number of direct children
func (d *Dir) Len() int {
	return len(d.children)
}

// List returns the children in insertion order. The slice is a copy.
func (d *Dir) List() []Node {
	return slices.Clone(d.children)
}

// Insert attaches node under its name.
//
// If a child with the same name already exists nothing changes and true is
// returned; the existing child is never replaced. Inserting the directory
// into itself fails with ErrSelfContainment and inserting one of its
// ancestors fails with ErrCycleDetected. Otherwise the node is detached from
// its previous owner and attached here.
//
// Returns whether a child with node's name is now present.
func (d *Dir) Insert(node Node) (bool, error) {
	if node == nil {
		return false, nil
	}
	name := node.Name()
	if d.Has(name) {
		return true, nil
	}

	if nd, ok := node.(*Dir); ok {
		if nd == d {
			return false, newNodeError("insert", name, ErrSelfContainment)
		}
		for p := d.owner; p != nil; p = p.owner {
			if p == nd {
				return false, newNodeError("insert", name, ErrCycleDetected)
			}
		}
	}

	nb := node.base()
	if prev := nb.owner; prev != nil {
		prev.detach(name)
	}
	d.index[name] = len(d.children)
	d.children = append(d.children, node)
	nb.owner = d

	return d.Has(name), nil
}

// Remove detaches the named child. Returns whether the name is now absent,
// which is also true when it was never present.
func (d *Dir) Remove(name string) bool {
	if child := d.detach(name); child != nil {
		child.base().owner = nil
	}
	return !d.Has(name)
}

// detach drops the named child from the index without touching its owner
func (d *Dir) detach(name string) Node {
	i, ok := d.index[name]
	if !ok {
		return nil
	}
	child := d.children[i]
	d.children = slices.Delete(d.children, i, i+1)
	delete(d.index, name)
	for j := i; j < len(d.children); j++ {
		d.index[d.children[j].Name()] = j
	}
	return child
}

// rekey moves a child's index entry to a new name, keeping its position
func (d *Dir) rekey(oldName, newName string) {
	i, ok := d.index[oldName]
	if !ok {
		return
	}
	delete(d.index, oldName)
	d.index[newName] = i
}

// Copy returns a detached deep copy named "<name> copy". Children keep
// their names.
func (d *Dir) Copy() Node {
	c, _ := NewDir(copyName(d.name), d.kind)
	for _, child := range d.children {
		cc := child.Copy()
		cc.base().name = child.Name()
		c.Insert(cc) //nolint:errcheck // fresh detached subtree, guards cannot fire
	}
	return c
}
