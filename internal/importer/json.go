package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nestcut/nestcut/internal/model"
)

// ReadRequest decodes a nest request document from a reader and validates
// it. Unknown fields are rejected so malformed driver output fails loudly
// instead of silently nesting with defaults.
func ReadRequest(r io.Reader) (model.NestRequest, error) {
	var req model.NestRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return model.NestRequest{}, fmt.Errorf("decoding nest request: %w", err)
	}
	if err := req.Validate(); err != nil {
		return model.NestRequest{}, fmt.Errorf("invalid nest request: %w", err)
	}
	return req, nil
}

// LoadRequest reads and decodes a nest request from a JSON file.
func LoadRequest(path string) (model.NestRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.NestRequest{}, fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()
	return ReadRequest(f)
}

// RequestFromImport builds a nest request from an imported part list, a
// default material for rows that name none, and the board sizes to use.
func RequestFromImport(res ImportResult, defaultMaterial string, boards []model.BoardSpec, settings model.SettingsSpec) (model.NestRequest, error) {
	if len(res.Errors) > 0 {
		return model.NestRequest{}, fmt.Errorf("part list import failed: %s", res.Errors[0])
	}
	parts := make([]model.PartSpec, len(res.Parts))
	copy(parts, res.Parts)
	for i := range parts {
		if parts[i].Material == "" {
			parts[i].Material = defaultMaterial
		}
	}
	req := model.NestRequest{
		Settings: settings,
		Boards:   boards,
		Parts:    parts,
	}
	if err := req.Validate(); err != nil {
		return model.NestRequest{}, err
	}
	return req, nil
}
