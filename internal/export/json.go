// Package export encodes nesting results into the formats consumed by host
// applications and shop-floor workflows: the JSON result document, PDF
// board diagrams, QR-coded part labels, and DXF cut layouts.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nestcut/nestcut/internal/engine"
)

// Placement is the wire representation of one placed part.
type Placement struct {
	PartID   string  `json:"part_id"`
	Material string  `json:"material"`
	BoardID  int     `json:"board_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation int     `json:"rotation"`
}

// BoardSummary is the wire representation of one used board.
type BoardSummary struct {
	ID              int     `json:"id"`
	Material        string  `json:"material"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	PartsCount      int     `json:"parts_count"`
	UsedArea        float64 `json:"used_area"`
	WastePercentage float64 `json:"waste_percentage"`
}

// Unplaced reports a part that stopped nesting for its material.
type Unplaced struct {
	Material    string  `json:"material"`
	PartID      string  `json:"part_id"`
	PartWidth   float64 `json:"part_width"`
	PartHeight  float64 `json:"part_height"`
	BoardWidth  float64 `json:"board_width"`
	BoardHeight float64 `json:"board_height"`
	Message     string  `json:"message"`
}

// Stats carries run-level metadata.
type Stats struct {
	TimeMS     int64 `json:"time_ms"`
	BoardsUsed int   `json:"boards_used"`
}

// Response is the result document written back to the host driver. The
// placements, boards, and stats blocks match the format the host already
// parses; the unplaced block is additional diagnostics.
type Response struct {
	Placements []Placement              `json:"placements"`
	Boards     []BoardSummary           `json:"boards"`
	Unplaced   []Unplaced               `json:"unplaced,omitempty"`
	Stats      Stats                    `json:"stats"`
	Summary    engine.Summary           `json:"summary"`
	Materials  []engine.MaterialSummary `json:"material_summaries,omitempty"`
}

// BuildResponse flattens a nesting result into the wire document.
func BuildResponse(result engine.Result, elapsed time.Duration) Response {
	boards := result.Boards()

	resp := Response{
		Placements: []Placement{},
		Boards:     []BoardSummary{},
		Stats: Stats{
			TimeMS:     elapsed.Milliseconds(),
			BoardsUsed: len(boards),
		},
		Summary:   engine.Summarize(boards),
		Materials: engine.SummarizeByMaterial(result),
	}

	for _, b := range boards {
		for _, p := range b.Placed {
			resp.Placements = append(resp.Placements, Placement{
				PartID:   p.ID,
				Material: p.Material,
				BoardID:  p.BoardID,
				X:        p.X,
				Y:        p.Y,
				Rotation: p.Rotation,
			})
		}
		resp.Boards = append(resp.Boards, BoardSummary{
			ID:              b.ID,
			Material:        b.Material,
			Width:           b.Width,
			Height:          b.Height,
			PartsCount:      len(b.Placed),
			UsedArea:        b.UsedArea(),
			WastePercentage: b.WastePercentage(),
		})
	}

	for _, f := range result.Failures() {
		resp.Unplaced = append(resp.Unplaced, Unplaced{
			Material:    f.Material,
			PartID:      f.PartID,
			PartWidth:   f.PartWidth,
			PartHeight:  f.PartHeight,
			BoardWidth:  f.BoardWidth,
			BoardHeight: f.BoardHeight,
			Message:     f.Error(),
		})
	}

	return resp
}

// WriteResponse encodes the response as indented JSON.
func WriteResponse(w io.Writer, resp Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}

// SaveResponse writes the response document to a file.
func SaveResponse(path string, resp Response) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	if err := WriteResponse(f, resp); err != nil {
		return err
	}
	return f.Close()
}
