package main

import (
	"github.com/brettbedarf/memfs/filesystem"
	"github.com/brettbedarf/memfs/internal/util"
	"github.com/brettbedarf/memfs/requests"
)

// seedTree adds the seed's directories then its files. Failed requests are
// logged and skipped. Returns how many of each were added.
func seedTree(fsys *filesystem.FileSystem, seed *requests.Seed) (dirs, files int) {
	logger := util.GetLogger("main.seedTree")

	for _, req := range seed.Dirs {
		if _, err := fsys.AddDirNode(req); err != nil {
			logger.Warn().Interface("request", req).Err(err).Msg("Failed to add directory request")
			continue
		}
		dirs++
	}
	for _, req := range seed.Files {
		if _, err := fsys.AddFileNode(req); err != nil {
			logger.Warn().Interface("request", req).Err(err).Msg("Failed to add file request")
			continue
		}
		files++
	}
	return dirs, files
}
