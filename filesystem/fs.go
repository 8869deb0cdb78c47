package filesystem

import (
	"slices"

	"github.com/brettbedarf/memfs/internal/util"
)

// RootName is the name of every tree's root directory
const RootName = "root"

// FileSystem owns a tree and a cursor (the current directory) used to
// resolve relative paths. It is the entry point for the shell.
//
// NOTE: FileSystem is not thread-safe. Callers sharing one across goroutines
// must serialize access themselves.
type FileSystem struct {
	root       *Dir
	cursor     *Dir
	cursorPath []*Dir // root..cursor; each element owns the next
}

func NewFS() *FileSystem {
	root, _ := NewDir(RootName, DefaultDirKind)
	return &FileSystem{
		root:       root,
		cursor:     root,
		cursorPath: []*Dir{root},
	}
}

// Copy returns an independent deep copy of the whole tree. Nodes keep their
// names but get new ids. The copy's cursor starts at its root.
func (fs *FileSystem) Copy() *FileSystem {
	c := NewFS()
	c.root.kind = fs.root.kind
	for _, child := range fs.root.children {
		cc := child.Copy()
		cc.base().name = child.Name()
		c.root.Insert(cc) //nolint:errcheck // fresh detached subtree, guards cannot fire
	}
	return c
}

func (fs *FileSystem) Root() *Dir {
	return fs.root
}

// Cursor returns the current directory
func (fs *FileSystem) Cursor() *Dir {
	return fs.cursor
}

// CursorPath returns a copy of the directories from root to the cursor
func (fs *FileSystem) CursorPath() []*Dir {
	return slices.Clone(fs.cursorPath)
}

// CursorPathNames returns the names along the cursor path, i.e. ["root", "docs"]
func (fs *FileSystem) CursorPathNames() []string {
	names := make([]string, len(fs.cursorPath))
	for i, d := range fs.cursorPath {
		names[i] = d.Name()
	}
	return names
}

// List returns the cursor's children in insertion order
func (fs *FileSystem) List() []Node {
	return fs.cursor.List()
}

// CreateFile creates a file in the cursor.
//
// If a file with the same name already exists it is returned unchanged and
// content is not written. If the name is taken by a directory, returns nil.
func (fs *FileSystem) CreateFile(name string, content any, origin *Origin) (*File, error) {
	logger := util.GetLogger("FS.CreateFile")

	f, err := NewFile(name, content, origin)
	if err != nil {
		return nil, err
	}
	if existing := fs.cursor.Get(f.Name()); existing != nil {
		logger.Debug().Str("path", existing.Path()).Msg("Item already exists")
		ef, _ := existing.(*File)
		return ef, nil
	}
	if ok, err := fs.cursor.Insert(f); err != nil || !ok {
		return nil, err
	}
	logger.Debug().Str("path", f.Path()).Str("kind", f.Kind()).Msg("Created file")
	return f, nil
}

// CreateDirectory creates a directory in the cursor. Like [FileSystem.CreateFile]
// an existing directory with the same name is returned as is.
func (fs *FileSystem) CreateDirectory(name string, kind DirKind) (*Dir, error) {
	logger := util.GetLogger("FS.CreateDirectory")

	d, err := NewDir(name, kind)
	if err != nil {
		return nil, err
	}
	if existing := fs.cursor.Get(d.Name()); existing != nil {
		logger.Debug().Str("path", existing.Path()).Msg("Item already exists")
		ed, _ := existing.(*Dir)
		return ed, nil
	}
	if ok, err := fs.cursor.Insert(d); err != nil || !ok {
		return nil, err
	}
	logger.Debug().Str("path", d.Path()).Msg("Created directory")
	return d, nil
}

// OpenDirectory makes the directory at path the cursor and returns it.
// Returns nil and leaves the cursor unchanged if path does not resolve to a
// directory.
func (fs *FileSystem) OpenDirectory(path string) *Dir {
	logger := util.GetLogger("FS.OpenDirectory")

	var dir *Dir
	if isRootPath(path) {
		dir = fs.root
	} else {
		dir, _ = fs.ResolvePath(path).(*Dir)
	}
	if dir == nil {
		logger.Debug().Str("path", path).Msg("No directory found")
		return nil
	}

	fs.setCursor(dir)
	logger.Trace().Strs("cursor", fs.CursorPathNames()).Msg("Changed directory")
	return dir
}

// GoBack moves the cursor up steps levels. steps must be at least 1 and less
// than the cursor path depth; otherwise returns nil without moving.
func (fs *FileSystem) GoBack(steps int) *Dir {
	if steps <= 0 || steps >= len(fs.cursorPath) {
		return nil
	}

	dir := fs.cursor
	moved := 0
	for dir != nil && moved < steps {
		dir = dir.owner
		moved++
	}
	if dir == nil || dir == fs.cursor {
		return nil
	}

	fs.cursor = dir
	fs.cursorPath = fs.cursorPath[:len(fs.cursorPath)-moved]
	return dir
}

// GoBackToDirectory moves the cursor to the nearest ancestor on the cursor
// path named name. The cursor itself is not considered. Returns nil if no
// such ancestor exists.
func (fs *FileSystem) GoBackToDirectory(name string) *Dir {
	for i := len(fs.cursorPath) - 2; i >= 0; i-- {
		if d := fs.cursorPath[i]; d.Name() == name {
			fs.cursor = d
			fs.cursorPath = fs.cursorPath[:i+1]
			return d
		}
	}
	return nil
}

// GetItem returns the node for key: a child name in the cursor, or a path
// when key contains a separator
func (fs *FileSystem) GetItem(key string) Node {
	if isPathKey(key) {
		return fs.ResolvePath(key)
	}
	return fs.cursor.Get(key)
}

// HasItem reports whether [FileSystem.GetItem] finds key
func (fs *FileSystem) HasItem(key string) bool {
	return fs.GetItem(key) != nil
}

// RemoveItem detaches the node found by key from its owner. Returns whether
// key is now absent, so a missing key also returns true. The root and
// directories on the cursor path cannot be removed; false is returned.
func (fs *FileSystem) RemoveItem(key string) bool {
	logger := util.GetLogger("FS.RemoveItem")

	n := fs.GetItem(key)
	if n == nil {
		return true
	}
	if d, ok := n.(*Dir); ok && slices.Contains(fs.cursorPath, d) {
		logger.Debug().Str("path", d.Path()).Msg("Refusing to remove directory on cursor path")
		return false
	}
	owner := n.Owner()
	if owner == nil {
		return false
	}
	removed := owner.Remove(n.Name())
	logger.Debug().Str("path", owner.Path()+Separator+n.Name()).Bool("removed", removed).Msg("Removed item")
	return removed
}

// Reparent moves node under newOwner as one step: either node ends up in
// newOwner or nothing changes. Moving a node to its current owner is a no-op.
// A different node already using the name fails with ErrNameCollision.
func (fs *FileSystem) Reparent(node Node, newOwner *Dir) error {
	if node == nil || newOwner == nil {
		return nil
	}
	name := node.Name()
	if existing := newOwner.Get(name); existing != nil {
		if existing == node {
			return nil
		}
		return newNodeError("move", name, ErrNameCollision)
	}
	if _, err := newOwner.Insert(node); err != nil {
		return err
	}
	fs.refreshCursorPath()
	return nil
}

// MoveItemTo moves the item found by name to the directory at
// destinationPath and returns that directory. Returns nil if either cannot
// be found or the destination is not a directory.
func (fs *FileSystem) MoveItemTo(name, destinationPath string) (*Dir, error) {
	logger := util.GetLogger("FS.MoveItemTo")

	item := fs.GetItem(name)
	if item == nil {
		return nil, nil
	}
	dir, ok := fs.ResolvePath(destinationPath).(*Dir)
	if !ok {
		return nil, nil
	}
	if err := fs.Reparent(item, dir); err != nil {
		logger.Debug().Err(err).Str("item", item.Path()).Str("dest", dir.Path()).Msg("Move failed")
		return nil, err
	}
	logger.Debug().Str("item", item.Path()).Msg("Moved item")
	return dir, nil
}

// RenameItem renames the cursor's child oldName. Returns nil if there is no
// such child. A taken newName fails with ErrNameCollision and neither node
// changes.
func (fs *FileSystem) RenameItem(oldName, newName string) (Node, error) {
	logger := util.GetLogger("FS.RenameItem")

	item := fs.cursor.Get(oldName)
	if item == nil {
		return nil, nil
	}
	if err := item.Rename(newName); err != nil {
		return nil, err
	}
	logger.Debug().Str("from", oldName).Str("path", item.Path()).Msg("Renamed item")
	return item, nil
}

// CopyItem inserts a deep copy of the cursor's child name into the cursor,
// named "<name> copy"
func (fs *FileSystem) CopyItem(name string) (Node, error) {
	return fs.CopyItemTo(name, ".")
}

// CopyItemTo inserts a deep copy, named "<name> copy", of the item found by
// name into the directory at destinationPath. Returns nil if either cannot
// be found or the destination is not a directory.
func (fs *FileSystem) CopyItemTo(name, destinationPath string) (Node, error) {
	logger := util.GetLogger("FS.CopyItemTo")

	item := fs.GetItem(name)
	if item == nil {
		return nil, nil
	}
	dir, ok := fs.ResolvePath(destinationPath).(*Dir)
	if !ok {
		return nil, nil
	}
	c := item.Copy()
	if err := fs.Reparent(c, dir); err != nil {
		return nil, err
	}
	logger.Debug().Str("from", item.Path()).Str("to", c.Path()).Msg("Copied item")
	return c, nil
}

// setCursor rebuilds the cursor path by walking dir's owners up to the root
func (fs *FileSystem) setCursor(dir *Dir) {
	path := []*Dir{dir}
	for p := dir.owner; p != nil; p = p.owner {
		path = append(path, p)
	}
	slices.Reverse(path)
	if path[0] != fs.root {
		// detached from the tree; fall back to root
		fs.cursor = fs.root
		fs.cursorPath = []*Dir{fs.root}
		return
	}
	fs.cursor = dir
	fs.cursorPath = path
}

// refreshCursorPath re-derives the cursor path from the tree after a move
func (fs *FileSystem) refreshCursorPath() {
	fs.setCursor(fs.cursor)
}
