package filesystem

import (
	"fmt"
	"path"
	"strings"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/internal/util"
	"github.com/google/uuid"
)

// AddFileNode adds a new file at the request's root-anchored path, creating
// any missing directories, and returns it. The cursor is not used or moved.
// If a node already exists at the path, it returns an error.
func (fs *FileSystem) AddFileNode(req *memfs.FileCreateRequest) (*File, error) {
	logger := util.GetLogger("FS.AddFileNode")

	dirPath, name := path.Split(trimRootPrefix(req.Path))
	if _, err := ValidateName(name); err != nil {
		return nil, newNodeError("create", req.Path, err)
	}
	id, err := parseRequestID(req.UUID)
	if err != nil {
		return nil, err
	}

	parent := fs.root
	if dirPath != "" {
		// Implicit dir requests share the file's node fields with a different path
		dirReq := memfs.DirCreateRequest{NodeRequest: memfs.NodeRequest{Path: dirPath, Type: memfs.DirNodeType}}
		d, err := fs.AddDirNode(&dirReq)
		if err != nil {
			logger.Error().Err(err).Str("path", dirReq.Path).Msg("Failed to create file's ancestor directory(s)")
			return nil, err
		}
		parent = d
	}

	if parent.Has(strings.TrimSpace(name)) {
		err := fmt.Errorf("file already exists at path %s", req.Path)
		logger.Debug().Err(err).Msg("Failed to create file")
		return nil, err
	}

	var origin *Origin
	if req.Origin != "" {
		origin = &Origin{Type: req.Origin}
	}
	f, err := NewFile(name, req.Content, origin)
	if err != nil {
		return nil, err
	}
	if id != uuid.Nil {
		f.id = id
	}
	if _, err := parent.Insert(f); err != nil {
		return nil, err
	}
	logger.Debug().Str("path", f.Path()).Msg("Added new file node")
	return f, nil
}

// AddDirNode adds all missing directories in the request's root-anchored
// path and returns the last one.
// It is equivalent to `mkdir -p` and will not error if the directory already
// exists. A file in the way is an error.
func (fs *FileSystem) AddDirNode(req *memfs.DirCreateRequest) (*Dir, error) {
	logger := util.GetLogger("FS.AddDirNode")

	id, err := parseRequestID(req.UUID)
	if err != nil {
		return nil, err
	}

	var segs []string
	for _, seg := range strings.Split(trimRootPrefix(req.Path), Separator) {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		// every segment is checked before the first insert
		if _, err := ValidateName(seg); err != nil {
			return nil, newNodeError("create", seg, err)
		}
		segs = append(segs, seg)
	}

	cur := fs.root
	newCnt := 0
	for _, seg := range segs {
		if child := cur.Get(strings.TrimSpace(seg)); child != nil {
			d, ok := child.(*Dir)
			if !ok {
				return nil, fmt.Errorf("%s is not a directory in path %s", child.Path(), req.Path)
			}
			cur = d
			continue
		}
		d, err := NewDir(seg, DirKind(req.Kind))
		if err != nil {
			return nil, err
		}
		if _, err := cur.Insert(d); err != nil {
			return nil, err
		}
		newCnt++
		cur = d
	}

	if newCnt > 0 {
		// only a newly created leaf takes the request's identity
		if id != uuid.Nil {
			cur.id = id
		}
		logger.Debug().Str("path", req.Path).Msg(fmt.Sprintf("Created %d new dir(s)", newCnt))
	}
	return cur, nil
}

func parseRequestID(id string) (uuid.UUID, error) {
	if id == "" {
		return uuid.Nil, nil
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid node uuid %q: %w", id, err)
	}
	return parsed, nil
}

func trimRootPrefix(p string) string {
	p = strings.TrimSpace(p)
	if isRootPath(p) {
		return ""
	}
	p = strings.TrimPrefix(p, RootName+Separator)
	return strings.TrimPrefix(p, Separator)
}
