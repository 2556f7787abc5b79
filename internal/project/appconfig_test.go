package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	assert.Equal(t, 3.0, cfg.DefaultKerfWidth)
	assert.True(t, cfg.DefaultAllowRotation)
	assert.Equal(t, 2440.0, cfg.DefaultBoardWidth)
	assert.Equal(t, 1220.0, cfg.DefaultBoardHeight)
	assert.NotNil(t, cfg.RecentInputs)
}

func TestAppConfig_ToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultKerfWidth = 4.5
	cfg.DefaultAllowRotation = false

	s := cfg.ToSettings()
	assert.Equal(t, 4.5, s.KerfWidth)
	assert.False(t, s.AllowRotation)

	// Zero kerf falls back to the engine default
	cfg.DefaultKerfWidth = 0
	assert.Equal(t, 3.0, cfg.ToSettings().KerfWidth)
}

func TestAppConfig_DefaultBoard(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultBoardWidth = 2800
	cfg.DefaultBoardHeight = 2070

	board := cfg.DefaultBoard("Oak")
	assert.Equal(t, "Oak", board.Material)
	assert.Equal(t, 2800.0, board.Width)
	assert.Equal(t, 2070.0, board.Height)

	cfg.DefaultBoardWidth = 0
	assert.Equal(t, 2440.0, cfg.DefaultBoard("Oak").Width)
}

func TestAppConfig_AddRecentInput(t *testing.T) {
	cfg := DefaultAppConfig()

	cfg.AddRecentInput("a.json")
	cfg.AddRecentInput("b.json")
	cfg.AddRecentInput("a.json")

	// Deduplicated, most recent first
	assert.Equal(t, []string{"a.json", "b.json"}, cfg.RecentInputs)

	for i := 0; i < 20; i++ {
		cfg.AddRecentInput(filepath.Join("inputs", "file", string(rune('a'+i))+".json"))
	}
	assert.Len(t, cfg.RecentInputs, maxRecentInputs)
}

func TestSaveLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := DefaultAppConfig()
	cfg.DefaultKerfWidth = 2.5
	cfg.AddRecentInput("job.json")
	require.NoError(t, SaveAppConfig(path, cfg))

	loaded, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2.5, loaded.DefaultKerfWidth)
	assert.Equal(t, []string{"job.json"}, loaded.RecentInputs)
}

func TestLoadAppConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAppConfig(), cfg)
}

func TestLoadAppConfig_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadAppConfig(path)
	assert.Error(t, err)
}

func TestLoadAppConfig_NilRecentInputsNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"default_kerf_width": 3}`), 0644))

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.NotNil(t, cfg.RecentInputs)
}
