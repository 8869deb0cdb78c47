package requests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/internal/util"
)

// Seed holds the node requests decoded from a seed file, split by type in
// file order
type Seed struct {
	Dirs    []*memfs.DirCreateRequest
	Files   []*memfs.FileCreateRequest
	Skipped int // entries that could not be decoded
}

// LoadSeedFile reads a JSON or YAML (by extension) array of node
// definitions. Files without an origin get defaultOrigin.
//
// Entries that fail to decode or have an unknown type are logged and
// skipped; only an unreadable or malformed file is an error.
func LoadSeedFile(path, defaultOrigin string) (*Seed, error) {
	logger := util.GetLogger("Requests.LoadSeedFile")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var raw []json.RawMessage
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		raw, err = yamlToRawMessages(data)
	case ".json", "":
		err = json.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported seed file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	seed := ParseSeed(raw, defaultOrigin)
	logger.Debug().
		Str("path", path).
		Int("files", len(seed.Files)).
		Int("directories", len(seed.Dirs)).
		Int("skipped", seed.Skipped).
		Msg("Loaded seed file")
	return seed, nil
}

// ParseSeed decodes each raw JSON node definition
func ParseSeed(rawNodes []json.RawMessage, defaultOrigin string) *Seed {
	logger := util.GetLogger("Requests.ParseSeed")
	seed := &Seed{}

	for _, rawNode := range rawNodes {
		nodeType, err := GetNodeType(rawNode)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to get node type")
			seed.Skipped++
			continue
		}

		switch nodeType {
		case memfs.FileNodeType:
			fileReq, err := UnmarshalFileRequest(rawNode, defaultOrigin)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to unmarshal file request")
				seed.Skipped++
				continue
			}
			seed.Files = append(seed.Files, fileReq)
			logger.Trace().Str("path", fileReq.Path).Msg("Processed file request")

		case memfs.DirNodeType:
			dirReq, err := UnmarshalDirRequest(rawNode)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to unmarshal directory request")
				seed.Skipped++
				continue
			}
			seed.Dirs = append(seed.Dirs, dirReq)
			logger.Trace().Str("path", dirReq.Path).Msg("Processed directory request")

		default:
			logger.Warn().Str("type", string(nodeType)).Msg("Unknown node type")
			seed.Skipped++
		}
	}
	return seed
}

// yamlToRawMessages re-encodes each YAML sequence item as JSON so both
// formats share one decoding path
func yamlToRawMessages(data []byte) ([]json.RawMessage, error) {
	var items []map[string]any
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	raw := make([]json.RawMessage, 0, len(items))
	for i, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		raw = append(raw, b)
	}
	return raw, nil
}
