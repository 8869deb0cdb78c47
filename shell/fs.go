package shell

import "github.com/brettbedarf/memfs/filesystem"

// FileSystem is the navigator API the shell drives. It is satisfied by
// [*filesystem.FileSystem].
type FileSystem interface {
	Cursor() *filesystem.Dir
	CursorPathNames() []string
	List() []filesystem.Node

	CreateFile(name string, content any, origin *filesystem.Origin) (*filesystem.File, error)
	CreateDirectory(name string, kind filesystem.DirKind) (*filesystem.Dir, error)

	ResolvePath(path string) filesystem.Node
	OpenDirectory(path string) *filesystem.Dir
	GoBack(steps int) *filesystem.Dir
	GoBackToDirectory(name string) *filesystem.Dir

	GetItem(key string) filesystem.Node
	HasItem(key string) bool
	RemoveItem(key string) bool

	MoveItemTo(name, destinationPath string) (*filesystem.Dir, error)
	RenameItem(oldName, newName string) (filesystem.Node, error)
	CopyItemTo(name, destinationPath string) (filesystem.Node, error)

	FindAllItems(match filesystem.Matcher, from *filesystem.Dir) []filesystem.Node
}

var _ FileSystem = (*filesystem.FileSystem)(nil)
