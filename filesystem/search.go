package filesystem

// Matcher reports whether a node is a search hit
type Matcher func(Node) bool

// ByName matches nodes whose name equals name
func ByName(name string) Matcher {
	return func(n Node) bool {
		return n.Name() == name
	}
}

// FindItem returns the first node under from (root when nil) accepted by
// match. All children of a directory are checked before descending into
// its subdirectories, in listing order.
func (fs *FileSystem) FindItem(match Matcher, from *Dir) Node {
	if from == nil {
		from = fs.root
	}
	return findFirst(match, from)
}

// FindAllItems returns every node under from (root when nil) accepted by
// match, in the same order [FileSystem.FindItem] visits them.
func (fs *FileSystem) FindAllItems(match Matcher, from *Dir) []Node {
	if from == nil {
		from = fs.root
	}
	return findAll(match, from, nil)
}

func findFirst(match Matcher, dir *Dir) Node {
	var subdirs []*Dir
	for _, child := range dir.children {
		if match(child) {
			return child
		}
		if d, ok := child.(*Dir); ok {
			subdirs = append(subdirs, d)
		}
	}
	for _, d := range subdirs {
		if found := findFirst(match, d); found != nil {
			return found
		}
	}
	return nil
}

func findAll(match Matcher, dir *Dir, acc []Node) []Node {
	var subdirs []*Dir
	for _, child := range dir.children {
		if match(child) {
			acc = append(acc, child)
		}
		if d, ok := child.(*Dir); ok {
			subdirs = append(subdirs, d)
		}
	}
	for _, d := range subdirs {
		acc = findAll(match, d, acc)
	}
	return acc
}
