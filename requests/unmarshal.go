package requests

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/brettbedarf/memfs"
)

// DefaultDirKind is applied to directory requests without a kind
const DefaultDirKind = "DEFAULT"

// GetNodeType extracts the node type from JSON without full unmarshaling
func GetNodeType(data []byte) (memfs.NodeCreateRequestType, error) {
	var meta struct {
		Type memfs.NodeCreateRequestType `json:"type"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", err
	}
	return meta.Type, nil
}

// UnmarshalFileRequest decodes a file node definition. origin is used when
// the definition has none.
func UnmarshalFileRequest(data []byte, origin string) (*memfs.FileCreateRequest, error) {
	var dto FileRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	return &memfs.FileCreateRequest{
		NodeRequest: convertNodeDTO(dto.NodeRequestDTO),
		Content:     valueOrDefault(dto.Content, ""),
		Origin:      valueOrDefault(dto.Origin, origin),
	}, nil
}

// UnmarshalDirRequest decodes a directory node definition
func UnmarshalDirRequest(data []byte) (*memfs.DirCreateRequest, error) {
	var dto DirRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	return &memfs.DirCreateRequest{
		NodeRequest: convertNodeDTO(dto.NodeRequestDTO),
		Kind:        valueOrDefault(dto.Kind, DefaultDirKind),
	}, nil
}

// Conversion logic with defaults in the unmarshaling layer
func convertNodeDTO(dto NodeRequestDTO) memfs.NodeRequest {
	return memfs.NodeRequest{
		Path: dto.Path,
		Type: dto.Type,
		UUID: valueOrDefault(dto.UUID, uuid.New().String()),
	}
}

// Helper function for default values
func valueOrDefault[T any](ptr *T, defaultValue T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultValue
}
