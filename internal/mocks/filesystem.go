package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/brettbedarf/memfs/filesystem"
)

// MockFileSystem implements shell.FileSystem for testing across packages
type MockFileSystem struct {
	mock.Mock
}

func (m *MockFileSystem) Cursor() *filesystem.Dir {
	return dirOrNil(m.Called().Get(0))
}

func (m *MockFileSystem) CursorPathNames() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockFileSystem) List() []filesystem.Node {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]filesystem.Node)
}

func (m *MockFileSystem) CreateFile(name string, content any, origin *filesystem.Origin) (*filesystem.File, error) {
	args := m.Called(name, content, origin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*filesystem.File), args.Error(1)
}

func (m *MockFileSystem) CreateDirectory(name string, kind filesystem.DirKind) (*filesystem.Dir, error) {
	args := m.Called(name, kind)
	return dirOrNil(args.Get(0)), args.Error(1)
}

func (m *MockFileSystem) ResolvePath(path string) filesystem.Node {
	return nodeOrNil(m.Called(path).Get(0))
}

func (m *MockFileSystem) OpenDirectory(path string) *filesystem.Dir {
	return dirOrNil(m.Called(path).Get(0))
}

func (m *MockFileSystem) GoBack(steps int) *filesystem.Dir {
	return dirOrNil(m.Called(steps).Get(0))
}

func (m *MockFileSystem) GoBackToDirectory(name string) *filesystem.Dir {
	return dirOrNil(m.Called(name).Get(0))
}

func (m *MockFileSystem) GetItem(key string) filesystem.Node {
	return nodeOrNil(m.Called(key).Get(0))
}

func (m *MockFileSystem) HasItem(key string) bool {
	return m.Called(key).Bool(0)
}

func (m *MockFileSystem) RemoveItem(key string) bool {
	return m.Called(key).Bool(0)
}

func (m *MockFileSystem) MoveItemTo(name, destinationPath string) (*filesystem.Dir, error) {
	args := m.Called(name, destinationPath)
	return dirOrNil(args.Get(0)), args.Error(1)
}

func (m *MockFileSystem) RenameItem(oldName, newName string) (filesystem.Node, error) {
	args := m.Called(oldName, newName)
	return nodeOrNil(args.Get(0)), args.Error(1)
}

func (m *MockFileSystem) CopyItemTo(name, destinationPath string) (filesystem.Node, error) {
	args := m.Called(name, destinationPath)
	return nodeOrNil(args.Get(0)), args.Error(1)
}

func (m *MockFileSystem) FindAllItems(match filesystem.Matcher, from *filesystem.Dir) []filesystem.Node {
	args := m.Called(match, from)

	// Handle function return types to run the matcher in tests
	if fn, ok := args.Get(0).(func(filesystem.Matcher, *filesystem.Dir) []filesystem.Node); ok {
		return fn(match, from)
	}

	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]filesystem.Node)
}

// Handle nil returns for pointer results
func dirOrNil(v any) *filesystem.Dir {
	if v == nil {
		return nil
	}
	return v.(*filesystem.Dir)
}

func nodeOrNil(v any) filesystem.Node {
	if v == nil {
		return nil
	}
	return v.(filesystem.Node)
}
