// Package project handles user-level persistence: application preferences
// stored under the user's home directory.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/nestcut/nestcut/internal/model"
)

// maxRecentInputs caps the recent input file list.
const maxRecentInputs = 10

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied when a request leaves them unset
	DefaultKerfWidth     float64 `json:"default_kerf_width"`
	DefaultAllowRotation bool    `json:"default_allow_rotation"`
	DefaultBoardWidth    float64 `json:"default_board_width"`
	DefaultBoardHeight   float64 `json:"default_board_height"`
	DefaultMaterial      string  `json:"default_material"`

	// Application preferences
	RecentInputs []string `json:"recent_inputs"`
}

// DefaultAppConfig returns an AppConfig populated with the engine defaults.
func DefaultAppConfig() AppConfig {
	defaults := model.DefaultSettings()
	return AppConfig{
		DefaultKerfWidth:     defaults.KerfWidth,
		DefaultAllowRotation: defaults.AllowRotation,
		DefaultBoardWidth:    model.DefaultBoardWidth,
		DefaultBoardHeight:   model.DefaultBoardHeight,
		DefaultMaterial:      "MDF",
		RecentInputs:         []string{},
	}
}

// ToSettings builds engine settings from the configured defaults.
func (c AppConfig) ToSettings() model.Settings {
	s := model.DefaultSettings()
	if c.DefaultKerfWidth > 0 {
		s.KerfWidth = c.DefaultKerfWidth
	}
	s.AllowRotation = c.DefaultAllowRotation
	return s
}

// DefaultBoard returns the fallback stock sheet for the given material.
func (c AppConfig) DefaultBoard(material string) model.BoardSpec {
	w, h := c.DefaultBoardWidth, c.DefaultBoardHeight
	if w <= 0 {
		w = model.DefaultBoardWidth
	}
	if h <= 0 {
		h = model.DefaultBoardHeight
	}
	return model.BoardSpec{Material: material, Width: w, Height: h}
}

// AddRecentInput records an input file path at the front of the recent
// list, deduplicating and capping the list length.
func (c *AppConfig) AddRecentInput(path string) {
	recent := []string{path}
	for _, p := range c.RecentInputs {
		if p != path && len(recent) < maxRecentInputs {
			recent = append(recent, p)
		}
	}
	c.RecentInputs = recent
}

// DefaultConfigDir returns the default directory for application
// configuration. On all platforms this is ~/.nestcut/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".nestcut")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultAppConfig(), nil
		}
		return AppConfig{}, err
	}
	var config AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return AppConfig{}, err
	}
	// Ensure RecentInputs is never nil
	if config.RecentInputs == nil {
		config.RecentInputs = []string{}
	}
	return config, nil
}
