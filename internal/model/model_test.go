package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPart_Defaults(t *testing.T) {
	p := NewPart("Plywood 18mm", 600, 400)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Plywood 18mm", p.Material)
	assert.Equal(t, "any", p.GrainDirection)
	assert.Equal(t, []int{Rotation0, Rotation90}, p.AllowedRotations)
	assert.Equal(t, UnplacedBoardID, p.BoardID)
	assert.False(t, p.Placed())
	assert.Equal(t, 240000.0, p.Area())
}

func TestRotatedDimensions(t *testing.T) {
	tests := []struct {
		rotation int
		wantW    float64
		wantH    float64
	}{
		{Rotation0, 150, 50},
		{Rotation90, 50, 150},
		{Rotation180, 150, 50},
		{Rotation270, 50, 150},
	}
	for _, tt := range tests {
		w, h := RotatedDimensions(150, 50, tt.rotation)
		assert.Equal(t, tt.wantW, w, "rotation %d", tt.rotation)
		assert.Equal(t, tt.wantH, h, "rotation %d", tt.rotation)
	}
}

func TestPart_PlacedDimensions(t *testing.T) {
	p := NewPart("MDF", 150, 50)
	p.Rotation = Rotation90

	assert.Equal(t, 50.0, p.PlacedWidth())
	assert.Equal(t, 150.0, p.PlacedHeight())
	// Base dimensions stay untouched
	assert.Equal(t, 150.0, p.Width)
	assert.Equal(t, 50.0, p.Height)
}

func TestParseGrainDirection(t *testing.T) {
	assert.Equal(t, []int{Rotation0, Rotation90}, ParseGrainDirection("any", true))
	assert.Equal(t, []int{Rotation0, Rotation90}, ParseGrainDirection("", true))
	assert.Equal(t, []int{Rotation0, Rotation90}, ParseGrainDirection("length", true))

	assert.Equal(t, []int{Rotation0}, ParseGrainDirection("fixed", true))
	assert.Equal(t, []int{Rotation0}, ParseGrainDirection("Vertical", true))
	assert.Equal(t, []int{Rotation0}, ParseGrainDirection("HORIZONTAL", true))

	// Global switch overrides grain
	assert.Equal(t, []int{Rotation0}, ParseGrainDirection("any", false))
}

func TestBoardSizes_Lookup(t *testing.T) {
	sizes := BoardSizes{
		"MDF": {Material: "MDF", Width: 2800, Height: 2070},
	}

	spec := sizes.Lookup("MDF")
	assert.Equal(t, 2800.0, spec.Width)

	fallback := sizes.Lookup("Oak")
	assert.Equal(t, DefaultBoardWidth, fallback.Width)
	assert.Equal(t, DefaultBoardHeight, fallback.Height)
	assert.Equal(t, "Oak", fallback.Material)
}

func TestSettingsSpec_ToSettings(t *testing.T) {
	// Empty spec keeps defaults
	s := SettingsSpec{}.ToSettings()
	assert.Equal(t, DefaultSettings(), s)

	off := false
	s = SettingsSpec{Kerf: 4.5, AllowRotation: &off, TimeoutMS: 1000}.ToSettings()
	assert.Equal(t, 4.5, s.KerfWidth)
	assert.False(t, s.AllowRotation)
	assert.Equal(t, 1000, s.TimeoutMS)
}

func TestNestRequest_BuildParts(t *testing.T) {
	req := NestRequest{
		Settings: SettingsSpec{Kerf: 3},
		Parts: []PartSpec{
			{ID: "side", Material: "MDF", Width: 600, Height: 400, GrainDirection: "fixed"},
			{ID: "shelf", Material: "MDF", Width: 500, Height: 300, Quantity: 3},
		},
	}

	parts := req.BuildParts(req.Settings.ToSettings())
	require.Len(t, parts, 4)

	assert.Equal(t, "side", parts[0].ID)
	assert.Equal(t, []int{Rotation0}, parts[0].AllowedRotations)

	assert.Equal(t, "shelf-1", parts[1].ID)
	assert.Equal(t, "shelf-2", parts[2].ID)
	assert.Equal(t, "shelf-3", parts[3].ID)
	assert.Equal(t, "any", parts[1].GrainDirection)
	for _, p := range parts {
		assert.Equal(t, UnplacedBoardID, p.BoardID)
	}
}

func TestNestRequest_Validate(t *testing.T) {
	ok := NestRequest{
		Boards: []BoardSpec{{Material: "MDF", Width: 2440, Height: 1220}},
		Parts:  []PartSpec{{ID: "a", Width: 100, Height: 100}},
	}
	assert.NoError(t, ok.Validate())

	bad := NestRequest{Parts: []PartSpec{{ID: "a", Width: 0, Height: 100}}}
	assert.Error(t, bad.Validate())

	badBoard := NestRequest{Boards: []BoardSpec{{Material: "MDF", Width: -1, Height: 1220}}}
	assert.Error(t, badBoard.Validate())
}
