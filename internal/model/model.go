// Package model defines the core data types for the nesting engine: parts,
// settings, board specifications and the JSON wire format used by drivers.
package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Rotation angles in degrees. Only 0 and 90 are ever produced by the
// engine; 180 and 270 are accepted in rotated-dimension math for
// completeness but never emitted.
const (
	Rotation0   = 0
	Rotation90  = 90
	Rotation180 = 180
	Rotation270 = 270
)

// UnplacedBoardID marks a part that has not been placed on any board.
const UnplacedBoardID = -1

// Part represents a rectangular piece to be cut. Width and Height are the
// base (unrotated) dimensions and are never mutated by the engine; only the
// placement fields X, Y, Rotation and BoardID are written during nesting.
type Part struct {
	ID               string  `json:"id"`
	Material         string  `json:"material"`
	Width            float64 `json:"width"`  // mm
	Height           float64 `json:"height"` // mm
	GrainDirection   string  `json:"grain_direction"`
	AllowedRotations []int   `json:"allowed_rotations"`

	// Placement result, filled in by the engine
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation int     `json:"rotation"`
	BoardID  int     `json:"board_id"`
}

// NewPart creates a part with a generated ID and default grain direction.
func NewPart(material string, w, h float64) *Part {
	return &Part{
		ID:               uuid.New().String()[:8],
		Material:         material,
		Width:            w,
		Height:           h,
		GrainDirection:   "any",
		AllowedRotations: []int{Rotation0, Rotation90},
		BoardID:          UnplacedBoardID,
	}
}

// Area returns the part's unrotated area.
func (p *Part) Area() float64 { return p.Width * p.Height }

// PlacedWidth returns the effective width given the committed rotation.
func (p *Part) PlacedWidth() float64 {
	w, _ := RotatedDimensions(p.Width, p.Height, p.Rotation)
	return w
}

// PlacedHeight returns the effective height given the committed rotation.
func (p *Part) PlacedHeight() float64 {
	_, h := RotatedDimensions(p.Width, p.Height, p.Rotation)
	return h
}

// Placed reports whether the part has been assigned to a board.
func (p *Part) Placed() bool { return p.BoardID != UnplacedBoardID }

// RotatedDimensions maps base dimensions and a rotation angle to effective
// dimensions. 90 and 270 swap width and height; 0 and 180 keep them. The
// base dimensions are never modified, which is what makes a failed rotation
// attempt side-effect free.
func RotatedDimensions(w, h float64, rotation int) (float64, float64) {
	if rotation == Rotation90 || rotation == Rotation270 {
		return h, w
	}
	return w, h
}

// ParseGrainDirection maps a free-text grain direction to the rotations a
// part may use. "fixed", "vertical" and "horizontal" lock the part to its
// base orientation; anything else (including the default "any") also allows
// 90 degrees. A disabled allowRotation setting overrides the grain and
// locks every part.
func ParseGrainDirection(grain string, allowRotation bool) []int {
	if !allowRotation {
		return []int{Rotation0}
	}
	switch strings.ToLower(strings.TrimSpace(grain)) {
	case "fixed", "vertical", "horizontal":
		return []int{Rotation0}
	default:
		return []int{Rotation0, Rotation90}
	}
}

// Settings holds the nesting configuration.
type Settings struct {
	KerfWidth     float64 `json:"kerf_width"`     // saw blade clearance in mm
	AllowRotation bool    `json:"allow_rotation"` // global 90-degree rotation switch
	TimeoutMS     int     `json:"timeout_ms"`     // accepted for wire compatibility, never consulted
}

func DefaultSettings() Settings {
	return Settings{
		KerfWidth:     3.0,
		AllowRotation: true,
		TimeoutMS:     60000,
	}
}

// BoardSpec gives the stock sheet dimensions for one material.
type BoardSpec struct {
	Material string  `json:"material"`
	Width    float64 `json:"width"`  // mm
	Height   float64 `json:"height"` // mm
}

// Default stock sheet dimensions used when a material has no BoardSpec.
const (
	DefaultBoardWidth  = 2440.0
	DefaultBoardHeight = 1220.0
)

// BoardSizes maps material names to stock dimensions.
type BoardSizes map[string]BoardSpec

// Lookup returns the board spec for a material, falling back to the
// default sheet size when the material has no entry.
func (bs BoardSizes) Lookup(material string) BoardSpec {
	if spec, ok := bs[material]; ok {
		return spec
	}
	return BoardSpec{Material: material, Width: DefaultBoardWidth, Height: DefaultBoardHeight}
}

// PartSpec is the wire representation of a part in a nest request.
type PartSpec struct {
	ID             string  `json:"id"`
	Material       string  `json:"material"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	GrainDirection string  `json:"grain_direction"`
	Quantity       int     `json:"quantity,omitempty"` // 0 or 1 means a single part
}

// SettingsSpec is the wire representation of the settings block. The JSON
// key for the kerf is "kerf", matching the driver format this engine is a
// drop-in replacement for.
type SettingsSpec struct {
	Kerf          float64 `json:"kerf"`
	AllowRotation *bool   `json:"allow_rotation"`
	TimeoutMS     int     `json:"timeout_ms"`
}

// NestRequest is the typed form of the driver's input document.
type NestRequest struct {
	Settings SettingsSpec `json:"settings"`
	Boards   []BoardSpec  `json:"boards"`
	Parts    []PartSpec   `json:"parts"`
}

// ToSettings converts the wire settings to engine settings, applying
// defaults for absent fields.
func (s SettingsSpec) ToSettings() Settings {
	out := DefaultSettings()
	if s.Kerf > 0 {
		out.KerfWidth = s.Kerf
	}
	if s.AllowRotation != nil {
		out.AllowRotation = *s.AllowRotation
	}
	if s.TimeoutMS > 0 {
		out.TimeoutMS = s.TimeoutMS
	}
	return out
}

// BoardSizes builds the material lookup table from the request's boards.
func (r NestRequest) BoardSizes() BoardSizes {
	sizes := make(BoardSizes, len(r.Boards))
	for _, b := range r.Boards {
		sizes[b.Material] = b
	}
	return sizes
}

// BuildParts expands the request's part specs into engine parts with
// resolved rotations. Quantities above one become numbered copies.
func (r NestRequest) BuildParts(settings Settings) []*Part {
	var parts []*Part
	for _, spec := range r.Parts {
		grain := spec.GrainDirection
		if grain == "" {
			grain = "any"
		}
		qty := spec.Quantity
		if qty < 1 {
			qty = 1
		}
		for i := 0; i < qty; i++ {
			id := spec.ID
			if id == "" {
				id = uuid.New().String()[:8]
			}
			if qty > 1 {
				id = fmt.Sprintf("%s-%d", id, i+1)
			}
			parts = append(parts, &Part{
				ID:               id,
				Material:         spec.Material,
				Width:            spec.Width,
				Height:           spec.Height,
				GrainDirection:   grain,
				AllowedRotations: ParseGrainDirection(grain, settings.AllowRotation),
				BoardID:          UnplacedBoardID,
			})
		}
	}
	return parts
}

// Validate checks a request for structural problems before it reaches the
// engine: parts and boards must have positive dimensions.
func (r NestRequest) Validate() error {
	for i, b := range r.Boards {
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("board %d (%q): non-positive dimensions %gx%g", i, b.Material, b.Width, b.Height)
		}
	}
	for i, p := range r.Parts {
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("part %d (%q): non-positive dimensions %gx%g", i, p.ID, p.Width, p.Height)
		}
		if p.Quantity < 0 {
			return fmt.Errorf("part %d (%q): negative quantity %d", i, p.ID, p.Quantity)
		}
	}
	return nil
}
