package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDir_Kind(t *testing.T) {
	t.Parallel()

	d, err := NewDir("d", "UNKNOWN")
	require.NoError(t, err)
	assert.Equal(t, DefaultDirKind, d.Kind())
}

func TestDir_InsertGetHas(t *testing.T) {
	t.Parallel()

	parent := newTestDir(t, "parent")
	child := newTestFile(t, "child.txt", "")

	ok, err := parent.Insert(child)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.True(t, parent.Has("child.txt"))
	assert.Same(t, child, parent.Get("child.txt"))
	assert.Same(t, parent, child.Owner())

	assert.False(t, parent.Has("nonexistent.txt"))
	assert.Nil(t, parent.Get("nonexistent.txt"))
}

func TestDir_Insert_NilNode(t *testing.T) {
	t.Parallel()

	ok, err := newTestDir(t, "d").Insert(nil)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDir_Insert_ExistingNameIsNoop(t *testing.T) {
	t.Parallel()

	parent := newTestDir(t, "parent")
	a := newTestFile(t, "same", "A")
	b := newTestFile(t, "same", "B")
	mustInsert(t, parent, a)

	ok, err := parent.Insert(b)
	require.NoError(t, err)
	assert.True(t, ok, "insert reports the name as present")

	assert.Same(t, a, parent.Get("same"), "existing child must not be replaced")
	assert.Nil(t, b.Owner(), "rejected node stays detached")
	assert.Equal(t, 1, parent.Len())
}

func TestDir_Insert_Self(t *testing.T) {
	t.Parallel()

	d := newTestDir(t, "d")
	ok, err := d.Insert(d)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrSelfContainment)
	assert.Equal(t, 0, d.Len())
	assert.Nil(t, d.Owner())
}

func TestDir_Insert_Ancestor(t *testing.T) {
	t.Parallel()

	x := newTestDir(t, "x")
	y := newTestDir(t, "y")
	z := newTestDir(t, "z")
	mustInsert(t, x, y)
	mustInsert(t, y, z)

	ok, err := y.Insert(x)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrCycleDetected)

	ok, err = z.Insert(x)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrCycleDetected)

	// structure untouched
	assert.Nil(t, x.Owner())
	assert.Same(t, x, y.Owner())
	assert.Same(t, y, z.Owner())
	assert.Equal(t, []Node{y}, x.List())
	assert.Equal(t, []Node{z}, y.List())
	assert.Equal(t, 0, z.Len())
}

func TestDir_Insert_ReparentsFromPreviousOwner(t *testing.T) {
	t.Parallel()

	a := newTestDir(t, "a")
	b := newTestDir(t, "b")
	f := newTestFile(t, "f", "")
	mustInsert(t, a, f)

	mustInsert(t, b, f)

	assert.False(t, a.Has("f"), "previous owner must release the node")
	assert.Same(t, f, b.Get("f"))
	assert.Same(t, b, f.Owner())
}

func TestDir_Remove(t *testing.T) {
	t.Parallel()

	parent := newTestDir(t, "parent")
	child := newTestFile(t, "child.txt", "")
	mustInsert(t, parent, child)

	assert.True(t, parent.Remove("child.txt"))
	assert.False(t, parent.Has("child.txt"))
	assert.Nil(t, child.Owner())
	assert.Equal(t, "child.txt", child.Path())

	// absent names also report absent
	assert.True(t, parent.Remove("nonexistent.txt"))
}

func TestDir_List_InsertionOrder(t *testing.T) {
	t.Parallel()

	parent := newTestDir(t, "parent")
	names := []string{"zeta", "alpha", "mid", "beta"}
	for _, n := range names {
		mustInsert(t, parent, newTestFile(t, n, ""))
	}
	require.True(t, parent.Remove("alpha"))
	mustInsert(t, parent, newTestFile(t, "alpha", ""))

	var got []string
	for _, n := range parent.List() {
		got = append(got, n.Name())
	}
	assert.Equal(t, []string{"zeta", "mid", "beta", "alpha"}, got)

	// List returns a copy
	list := parent.List()
	list[0] = nil
	assert.NotNil(t, parent.List()[0])
}

func TestDir_Copy_Deep(t *testing.T) {
	t.Parallel()

	src := newTestDir(t, "src")
	sub := newTestDir(t, "sub")
	f := newTestFile(t, "f.txt", "content")
	g := newTestFile(t, "g.txt", "nested")
	mustInsert(t, src, sub)
	mustInsert(t, src, f)
	mustInsert(t, sub, g)

	c, ok := src.Copy().(*Dir)
	require.True(t, ok)

	assert.Equal(t, "src copy", c.Name())
	assert.Nil(t, c.Owner())
	assert.Equal(t, src.Kind(), c.Kind())

	csub, ok := c.Get("sub").(*Dir)
	require.True(t, ok, "children keep their names")
	assert.NotSame(t, sub, csub)
	cf, ok := c.Get("f.txt").(*File)
	require.True(t, ok)
	assert.Equal(t, "content", cf.Content())
	cg, ok := csub.Get("g.txt").(*File)
	require.True(t, ok)
	assert.Equal(t, "src copy/sub/g.txt", cg.Path())

	// independence
	require.True(t, src.Remove("f.txt"))
	require.True(t, sub.Remove("g.txt"))
	assert.True(t, c.Has("f.txt"))
	assert.True(t, csub.Has("g.txt"))
}
