package filesystem

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cdChild creates dir name in the cursor and opens it
func cdChild(t *testing.T, fs *FileSystem, name string) *Dir {
	t.Helper()
	d, err := fs.CreateDirectory(name, DefaultDirKind)
	require.NoError(t, err)
	require.NotNil(t, d)
	require.Same(t, d, fs.OpenDirectory(name))
	return d
}

// assertCursorInvariant checks the cursor path starts at root and each
// element owns the next
func assertCursorInvariant(t *testing.T, fs *FileSystem) {
	t.Helper()
	path := fs.CursorPath()
	require.NotEmpty(t, path)
	assert.Same(t, fs.Root(), path[0])
	assert.Same(t, fs.Cursor(), path[len(path)-1])
	for i := 1; i < len(path); i++ {
		assert.Same(t, path[i-1], path[i].Owner())
	}
}

func TestNewFS(t *testing.T) {
	t.Parallel()

	fs := NewFS()

	require.NotNil(t, fs)
	assert.Equal(t, RootName, fs.Root().Name())
	assert.Nil(t, fs.Root().Owner())
	assert.Same(t, fs.Root(), fs.Cursor())
	assert.Equal(t, []string{"root"}, fs.CursorPathNames())
	assert.Empty(t, fs.List())
}

func TestFileSystem_CreateFile(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"a.txt", "with space", "  padded  ", "ünïcode"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			fs := NewFS()

			f, err := fs.CreateFile(name, nil, nil)
			require.NoError(t, err)
			require.NotNil(t, f)

			got, ok := fs.GetItem(f.Name()).(*File)
			require.True(t, ok)
			assert.Same(t, f, got)
			assert.Equal(t, "", got.Content())
		})
	}
}

func TestFileSystem_CreateFile_InvalidName(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	f, err := fs.CreateFile("a/b", nil, nil)
	assert.Nil(t, f)
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Empty(t, fs.List())
}

// touch a.txt twice returns the original file without overwriting
func TestFileSystem_CreateFile_Existing(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	first, err := fs.CreateFile("a.txt", nil, nil)
	require.NoError(t, err)

	second, err := fs.CreateFile("a.txt", "ignored", nil)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "", second.Content())
	assert.Len(t, fs.List(), 1)
}

func TestFileSystem_CreateFile_NameTakenByDir(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	_, err := fs.CreateDirectory("docs", DefaultDirKind)
	require.NoError(t, err)

	f, err := fs.CreateFile("docs", nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, f)

	d, err := fs.CreateDirectory("docs", DefaultDirKind)
	assert.NoError(t, err)
	assert.NotNil(t, d, "existing directory is returned")

	_, err = fs.CreateFile("notes", nil, nil)
	require.NoError(t, err)
	d, err = fs.CreateDirectory("notes", DefaultDirKind)
	assert.NoError(t, err)
	assert.Nil(t, d)
}

// mkdir docs; cd docs; cd ..
func TestFileSystem_MkdirCdScenario(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	docs, err := fs.CreateDirectory("docs", DefaultDirKind)
	require.NoError(t, err)
	assert.Same(t, docs, fs.Root().Get("docs"))

	require.Same(t, docs, fs.OpenDirectory("docs"))
	assert.Equal(t, []string{"root", "docs"}, fs.CursorPathNames())
	assertCursorInvariant(t, fs)

	require.Same(t, fs.Root(), fs.GoBack(1))
	assert.Equal(t, []string{"root"}, fs.CursorPathNames())
	assertCursorInvariant(t, fs)
}

// mkdir only targets the cursor, so nested creation needs a cd
func TestFileSystem_NestedMkdirScenario(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	_, err := fs.CreateDirectory("a", DefaultDirKind)
	require.NoError(t, err)

	d, err := fs.CreateDirectory("a/b", DefaultDirKind)
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Nil(t, d)

	require.NotNil(t, fs.OpenDirectory("a"))
	b, err := fs.CreateDirectory("b", DefaultDirKind)
	require.NoError(t, err)
	assert.Equal(t, "root/a/b", b.Path())
}

func TestFileSystem_OpenDirectory(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	a := cdChild(t, fs, "a")
	b := cdChild(t, fs, "b")
	_, err := fs.CreateFile("f.txt", nil, nil)
	require.NoError(t, err)
	fs.OpenDirectory("/")

	tests := []struct {
		path string
		want *Dir
	}{
		{"/", fs.Root()},
		{"root", fs.Root()},
		{"root/", fs.Root()},
		{"a", a},
		{"a/b", b},
		{"/a/b", b},
		{"root/a/b", b},
		{"./a", a},
		{"a/b/", b},
	}
	for _, tt := range tests {
		got := fs.OpenDirectory(tt.path)
		assert.Same(t, tt.want, got, "path %q", tt.path)
		assert.Equal(t, tt.want.Path(), strings.Join(fs.CursorPathNames(), Separator), "path %q", tt.path)
		assertCursorInvariant(t, fs)
		fs.OpenDirectory("/")
	}
}

func TestFileSystem_OpenDirectory_FailureKeepsCursor(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	a := cdChild(t, fs, "a")
	_, err := fs.CreateFile("f.txt", nil, nil)
	require.NoError(t, err)

	for _, p := range []string{"", "missing", "f.txt", "f.txt/x", "/nope/a"} {
		assert.Nil(t, fs.OpenDirectory(p), "path %q", p)
		assert.Same(t, a, fs.Cursor())
		assert.Equal(t, []string{"root", "a"}, fs.CursorPathNames())
	}
}

// the derived path equals the cursor path used to reach the directory
func TestFileSystem_PathRoundTrip(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	cdChild(t, fs, "x")
	cdChild(t, fs, "y")
	z := cdChild(t, fs, "z")
	fs.OpenDirectory("/")

	got := fs.OpenDirectory(z.Path())
	require.Same(t, z, got)
	assert.Equal(t, "root/x/y/z", got.Path())
	assert.Equal(t, got.Path(), strings.Join(fs.CursorPathNames(), Separator))
}

func TestFileSystem_GoBack(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	start := fs.Cursor()
	cdChild(t, fs, "a")
	mid := cdChild(t, fs, "b")
	cdChild(t, fs, "c")

	// out of range leaves state untouched
	for _, steps := range []int{0, -1, 4, 10} {
		assert.Nil(t, fs.GoBack(steps), "steps %d", steps)
		assert.Equal(t, []string{"root", "a", "b", "c"}, fs.CursorPathNames())
	}

	require.Same(t, mid, fs.GoBack(1))
	assert.Equal(t, []string{"root", "a", "b"}, fs.CursorPathNames())

	require.Same(t, start, fs.GoBack(2))
	assert.Equal(t, []string{"root"}, fs.CursorPathNames())
	assertCursorInvariant(t, fs)

	assert.Nil(t, fs.GoBack(1), "cannot go above root")
}

// GoBack(n) undoes n cd-into-child calls
func TestFileSystem_GoBack_InvertsCd(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	cdChild(t, fs, "a")
	before := fs.Cursor()
	for _, name := range []string{"b", "c", "d"} {
		cdChild(t, fs, name)
	}

	assert.Same(t, before, fs.GoBack(3))
	assertCursorInvariant(t, fs)
}

func TestFileSystem_GoBackToDirectory(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	a := cdChild(t, fs, "a")
	cdChild(t, fs, "b")
	cdChild(t, fs, "a") // root/a/b/a
	cdChild(t, fs, "c")

	assert.Nil(t, fs.GoBackToDirectory("c"), "cursor itself is excluded")
	assert.Nil(t, fs.GoBackToDirectory("missing"))
	assert.Equal(t, []string{"root", "a", "b", "a", "c"}, fs.CursorPathNames())

	inner := fs.GoBackToDirectory("a")
	require.NotNil(t, inner)
	assert.NotSame(t, a, inner, "nearest ancestor wins")
	assert.Equal(t, []string{"root", "a", "b", "a"}, fs.CursorPathNames())

	assert.Same(t, a, fs.GoBackToDirectory("a"))
	assert.Equal(t, []string{"root", "a"}, fs.CursorPathNames())

	assert.Same(t, fs.Root(), fs.GoBackToDirectory("root"))
	assertCursorInvariant(t, fs)
}

// mv docs root: docs already lives in root, so nothing changes
func TestFileSystem_MoveItemTo_SameOwnerScenario(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	docs, err := fs.CreateDirectory("docs", DefaultDirKind)
	require.NoError(t, err)

	dest, err := fs.MoveItemTo("docs", "root")
	require.NoError(t, err)
	assert.Same(t, fs.Root(), dest)
	assert.Equal(t, []Node{docs}, fs.Root().List())
	assert.Same(t, fs.Root(), docs.Owner())
}

func TestFileSystem_MoveItemTo(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	f, err := fs.CreateFile("f.txt", "data", nil)
	require.NoError(t, err)
	a := cdChild(t, fs, "a")
	b := cdChild(t, fs, "b")
	fs.OpenDirectory("/")

	dest, err := fs.MoveItemTo("f.txt", "a/b")
	require.NoError(t, err)
	assert.Same(t, b, dest)
	assert.False(t, fs.Root().Has("f.txt"))
	assert.Equal(t, "root/a/b/f.txt", f.Path())

	// destination resolves with the full grammar from any cursor
	fs.OpenDirectory("a")
	dest, err = fs.MoveItemTo("b", "/")
	require.NoError(t, err)
	assert.Same(t, fs.Root(), dest)
	assert.False(t, a.Has("b"))
	assert.Equal(t, "root/b/f.txt", f.Path())
}

func TestFileSystem_MoveItemTo_NotFound(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	_, err := fs.CreateFile("f.txt", nil, nil)
	require.NoError(t, err)
	_, err = fs.CreateFile("g.txt", nil, nil)
	require.NoError(t, err)

	dest, err := fs.MoveItemTo("missing", "/")
	assert.NoError(t, err)
	assert.Nil(t, dest)

	dest, err = fs.MoveItemTo("f.txt", "nowhere")
	assert.NoError(t, err)
	assert.Nil(t, dest)

	dest, err = fs.MoveItemTo("f.txt", "g.txt")
	assert.NoError(t, err)
	assert.Nil(t, dest, "destination must be a directory")
	assert.Same(t, fs.Root(), fs.GetItem("f.txt").Owner())
}

func TestFileSystem_MoveItemTo_Guards(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	x := cdChild(t, fs, "x")
	y := cdChild(t, fs, "y")
	fs.OpenDirectory("/")

	_, err := fs.MoveItemTo("x", "x")
	assert.ErrorIs(t, err, ErrSelfContainment)

	_, err = fs.MoveItemTo("x", "x/y")
	assert.ErrorIs(t, err, ErrCycleDetected)

	assert.Same(t, fs.Root(), x.Owner())
	assert.Same(t, x, y.Owner())
}

func TestFileSystem_MoveItemTo_Collision(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	top, err := fs.CreateFile("f.txt", "top", nil)
	require.NoError(t, err)
	a := cdChild(t, fs, "a")
	inner, err := fs.CreateFile("f.txt", "inner", nil)
	require.NoError(t, err)
	fs.OpenDirectory("/")

	_, err = fs.MoveItemTo("f.txt", "a")
	assert.ErrorIs(t, err, ErrNameCollision)
	assert.Same(t, fs.Root(), top.Owner())
	assert.Same(t, inner, a.Get("f.txt"))
}

func TestFileSystem_MoveItemTo_RefreshesCursorPath(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	cdChild(t, fs, "a")
	cdChild(t, fs, "x")
	fs.OpenDirectory("/")
	cdChild(t, fs, "b")
	fs.OpenDirectory("/a/x")

	_, err := fs.MoveItemTo("/a", "/b")
	require.NoError(t, err)

	assert.Equal(t, []string{"root", "b", "a", "x"}, fs.CursorPathNames())
	assertCursorInvariant(t, fs)
}

func TestFileSystem_RenameItem(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	f, err := fs.CreateFile("old.txt", "x", nil)
	require.NoError(t, err)

	got, err := fs.RenameItem("old.txt", "new.txt")
	require.NoError(t, err)
	assert.Same(t, f, got)
	assert.Nil(t, fs.GetItem("old.txt"))
	assert.Same(t, f, fs.GetItem("new.txt"))

	got, err = fs.RenameItem("missing", "x")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

// renaming onto a sibling must fail without orphaning either node
func TestFileSystem_RenameItem_Collision(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	a, err := fs.CreateFile("a", "A", nil)
	require.NoError(t, err)
	b, err := fs.CreateFile("b", "B", nil)
	require.NoError(t, err)

	got, err := fs.RenameItem("a", "b")
	assert.ErrorIs(t, err, ErrNameCollision)
	assert.Nil(t, got)

	assert.Same(t, a, fs.GetItem("a"))
	assert.Same(t, b, fs.GetItem("b"))
	assert.Equal(t, "A", a.Content())
	assert.Len(t, fs.List(), 2)
}

func TestFileSystem_CopyItem_File(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	orig, err := fs.CreateFile("a.txt", "v1", nil)
	require.NoError(t, err)

	n, err := fs.CopyItem("a.txt")
	require.NoError(t, err)
	c, ok := n.(*File)
	require.True(t, ok)
	assert.Equal(t, "a.txt copy", c.Name())
	assert.Same(t, c, fs.GetItem("a.txt copy"))

	orig.SetContent("v2")
	assert.Equal(t, "v1", c.Content())
	c.SetContent("v3")
	assert.Equal(t, "v2", orig.Content())
}

func TestFileSystem_CopyItem_Dir(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	docs := cdChild(t, fs, "docs")
	_, err := fs.CreateFile("readme", "hi", nil)
	require.NoError(t, err)
	fs.OpenDirectory("/")

	n, err := fs.CopyItem("docs")
	require.NoError(t, err)
	c, ok := n.(*Dir)
	require.True(t, ok)
	assert.Equal(t, "root/docs copy", c.Path())

	require.True(t, docs.Remove("readme"))
	assert.True(t, c.Has("readme"), "copy must keep its own children")
}

func TestFileSystem_CopyItem_CopyNameTaken(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	_, err := fs.CreateFile("a", "", nil)
	require.NoError(t, err)
	_, err = fs.CopyItem("a")
	require.NoError(t, err)

	n, err := fs.CopyItem("a")
	assert.ErrorIs(t, err, ErrNameCollision)
	assert.Nil(t, n)
	assert.Len(t, fs.List(), 2)

	n, err = fs.CopyItem("missing")
	assert.NoError(t, err)
	assert.Nil(t, n)
}

func TestFileSystem_CopyItemTo(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	_, err := fs.CreateFile("a.txt", "data", nil)
	require.NoError(t, err)
	dest := cdChild(t, fs, "dest")
	fs.OpenDirectory("/")

	n, err := fs.CopyItemTo("a.txt", "dest")
	require.NoError(t, err)
	assert.Same(t, dest, n.Owner())
	assert.Equal(t, "root/dest/a.txt copy", n.Path())
	assert.True(t, fs.Root().Has("a.txt"), "source stays in place")

	n, err = fs.CopyItemTo("a.txt", "a.txt")
	assert.NoError(t, err)
	assert.Nil(t, n)
}

func TestFileSystem_GetHasRemoveItem(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	a := cdChild(t, fs, "a")
	f, err := fs.CreateFile("f.txt", nil, nil)
	require.NoError(t, err)
	fs.OpenDirectory("/")

	assert.Same(t, a, fs.GetItem("a"))
	assert.Nil(t, fs.GetItem("f.txt"), "plain names are looked up in the cursor")
	assert.Same(t, f, fs.GetItem("a/f.txt"))
	assert.True(t, fs.HasItem("/a/f.txt"))
	assert.False(t, fs.HasItem("a/missing"))

	assert.True(t, fs.RemoveItem("a/f.txt"))
	assert.False(t, a.Has("f.txt"))
	assert.Nil(t, f.Owner())

	assert.True(t, fs.RemoveItem("missing"), "absent keys report absent")
}

func TestFileSystem_RemoveItem_CursorPathProtected(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	a := cdChild(t, fs, "a")
	cdChild(t, fs, "b")

	assert.False(t, fs.RemoveItem("/"))
	assert.False(t, fs.RemoveItem("/a"))
	assert.False(t, fs.RemoveItem("."))
	assert.Same(t, fs.Root(), a.Owner())
	assertCursorInvariant(t, fs)

	fs.OpenDirectory("/")
	assert.True(t, fs.RemoveItem("a"))
	assert.Empty(t, fs.List())
}

func TestFileSystem_Reparent(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	a := cdChild(t, fs, "a")
	fs.OpenDirectory("/")
	f, err := fs.CreateFile("f", nil, nil)
	require.NoError(t, err)

	require.NoError(t, fs.Reparent(f, a))
	assert.Same(t, a, f.Owner())
	assert.False(t, fs.Root().Has("f"))

	require.NoError(t, fs.Reparent(f, a), "same owner is a no-op")

	err = fs.Reparent(a, a)
	assert.ErrorIs(t, err, ErrSelfContainment)
	assert.Same(t, fs.Root(), a.Owner())

	assert.NoError(t, fs.Reparent(nil, a))
}

func TestFileSystem_Copy(t *testing.T) {
	t.Parallel()

	fs := NewFS()
	orig, err := fs.CreateFile("a.txt", "v1", nil)
	require.NoError(t, err)
	docs := cdChild(t, fs, "docs")
	_, err = fs.CreateFile("b.txt", "b", nil)
	require.NoError(t, err)

	c := fs.Copy()
	require.NotNil(t, c)
	assert.Same(t, c.Root(), c.Cursor())
	assert.Equal(t, []string{"root"}, c.CursorPathNames())
	assert.Same(t, docs, fs.Cursor())

	names := func(d *Dir) []string {
		var out []string
		for _, n := range d.List() {
			out = append(out, n.Name())
		}
		return out
	}
	assert.Equal(t, names(fs.Root()), names(c.Root()))

	cf, ok := c.ResolvePath("/a.txt").(*File)
	require.True(t, ok)
	assert.NotEqual(t, orig.ID(), cf.ID())
	cb, ok := c.ResolvePath("/docs/b.txt").(*File)
	require.True(t, ok)
	assert.Equal(t, "b", cb.Content())
	assert.Equal(t, "root/docs/b.txt", cb.Path())

	cf.SetContent("changed")
	assert.Equal(t, "v1", orig.Content())
	require.True(t, c.RemoveItem("docs"))
	assert.NotNil(t, fs.ResolvePath("/docs/b.txt"))
}
