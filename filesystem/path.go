package filesystem

import "strings"

// ResolvePath returns the node addressed by path, or nil.
//
// Grammar:
//   - "/", "root" and "root/" denote the root
//   - "." and "./" denote the cursor
//   - a leading "/" or "root/" anchors the rest at the root, otherwise it is
//     relative to the cursor (a leading "./" is dropped)
//   - the rest is split on "/" and each segment is looked up in the
//     directory reached so far; ".." steps to its owner and empty segments
//     are skipped
//
// A trailing "/" requires the result to be a directory.
func (fs *FileSystem) ResolvePath(path string) Node {
	if path == "" {
		return nil
	}
	if isRootPath(path) {
		return fs.root
	}
	if path == "." || path == "./" {
		return fs.cursor
	}

	var cur Node = fs.cursor
	rest := path
	switch {
	case strings.HasPrefix(path, RootName+Separator):
		cur, rest = fs.root, path[len(RootName)+1:]
	case strings.HasPrefix(path, Separator):
		cur, rest = fs.root, path[1:]
	case strings.HasPrefix(path, "."+Separator):
		rest = path[2:]
	}

	for _, seg := range strings.Split(rest, Separator) {
		if seg == "" || seg == "." {
			continue
		}
		dir, ok := cur.(*Dir)
		if !ok {
			return nil
		}
		if seg == ".." {
			if dir.owner == nil {
				return nil
			}
			cur = dir.owner
			continue
		}
		next := dir.Get(seg)
		if next == nil {
			return nil
		}
		cur = next
	}

	if strings.HasSuffix(path, Separator) {
		if _, ok := cur.(*Dir); !ok {
			return nil
		}
	}
	return cur
}

func isRootPath(path string) bool {
	return path == Separator || path == RootName || path == RootName+Separator
}

// isPathKey reports whether key should be resolved as a path rather than
// looked up as a plain child name
func isPathKey(key string) bool {
	return strings.Contains(key, Separator) || key == "." || key == ".."
}
