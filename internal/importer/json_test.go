package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nestcut/nestcut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRequest = `{
  "settings": {"kerf": 3.2, "allow_rotation": true},
  "boards": [
    {"material": "MDF", "width": 2440, "height": 1220}
  ],
  "parts": [
    {"id": "side", "material": "MDF", "width": 600, "height": 400, "grain_direction": "fixed"},
    {"id": "shelf", "material": "MDF", "width": 500, "height": 300}
  ]
}`

func TestReadRequest(t *testing.T) {
	req, err := ReadRequest(strings.NewReader(sampleRequest))
	require.NoError(t, err)

	assert.Equal(t, 3.2, req.Settings.Kerf)
	require.Len(t, req.Boards, 1)
	require.Len(t, req.Parts, 2)
	assert.Equal(t, "fixed", req.Parts[0].GrainDirection)

	settings := req.Settings.ToSettings()
	assert.Equal(t, 3.2, settings.KerfWidth)
	assert.True(t, settings.AllowRotation)
}

func TestReadRequest_UnknownFieldRejected(t *testing.T) {
	_, err := ReadRequest(strings.NewReader(`{"settings": {}, "sheets": []}`))
	assert.Error(t, err)
}

func TestReadRequest_InvalidPartRejected(t *testing.T) {
	_, err := ReadRequest(strings.NewReader(`{"parts": [{"id": "a", "width": 0, "height": 10}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid nest request")
}

func TestLoadRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleRequest), 0644))

	req, err := LoadRequest(path)
	require.NoError(t, err)
	assert.Len(t, req.Parts, 2)

	_, err = LoadRequest(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRequestFromImport(t *testing.T) {
	res := ImportResult{
		Parts: []model.PartSpec{
			{ID: "a", Width: 100, Height: 200},
			{ID: "b", Material: "Oak", Width: 50, Height: 60},
		},
	}
	boards := []model.BoardSpec{{Material: "MDF", Width: 2440, Height: 1220}}

	req, err := RequestFromImport(res, "MDF", boards, model.SettingsSpec{Kerf: 3})
	require.NoError(t, err)
	assert.Equal(t, "MDF", req.Parts[0].Material)
	assert.Equal(t, "Oak", req.Parts[1].Material)
}

func TestRequestFromImport_PropagatesImportErrors(t *testing.T) {
	res := ImportResult{Errors: []string{"line 2: missing width value"}}
	_, err := RequestFromImport(res, "MDF", nil, model.SettingsSpec{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing width")
}
