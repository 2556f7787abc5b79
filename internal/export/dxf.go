package export

import (
	"fmt"

	"github.com/nestcut/nestcut/internal/engine"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// Horizontal gap between board outlines in the DXF output, in mm.
const dxfBoardGap = 100.0

// Text height for part ids in the DXF output, in mm.
const dxfTextHeight = 20.0

// ExportDXF writes the nesting layout as a DXF drawing. Boards are laid
// out left to right along the X axis with a fixed gap between them. Board
// outlines go on the BOARDS layer, part outlines on the PARTS layer, and
// part ids on the LABELS layer, so CAM software can select cut geometry
// by layer.
func ExportDXF(path string, result engine.Result) error {
	boards := result.Boards()
	if len(boards) == 0 {
		return fmt.Errorf("no boards to export")
	}

	d := dxf.NewDrawing()
	d.AddLayer("BOARDS", dxf.DefaultColor, dxf.DefaultLineType, true)
	d.AddLayer("PARTS", color.Red, dxf.DefaultLineType, false)
	d.AddLayer("LABELS", color.Green, dxf.DefaultLineType, false)

	offsetX := 0.0
	for _, board := range boards {
		if err := drawBoard(d, board, offsetX); err != nil {
			return fmt.Errorf("drawing board %d: %w", board.ID, err)
		}
		offsetX += board.Width + dxfBoardGap
	}

	return d.SaveAs(path)
}

// drawBoard adds one board outline and its placements at the given X offset.
// Board coordinates use Y-up with the board origin at its bottom-left, so
// part Y positions are flipped from the engine's top-left convention.
func drawBoard(d *drawing.Drawing, board *engine.Board, offsetX float64) error {
	if err := d.ChangeLayer("BOARDS"); err != nil {
		return err
	}
	if err := drawRect(d, offsetX, 0, board.Width, board.Height); err != nil {
		return err
	}

	for _, p := range board.Placed {
		if err := d.ChangeLayer("PARTS"); err != nil {
			return err
		}
		x := offsetX + p.X
		y := board.Height - p.Y - p.PlacedHeight()
		if err := drawRect(d, x, y, p.PlacedWidth(), p.PlacedHeight()); err != nil {
			return err
		}

		if err := d.ChangeLayer("LABELS"); err != nil {
			return err
		}
		if _, err := d.Text(p.ID, x+p.PlacedWidth()/2, y+p.PlacedHeight()/2, 0.0, dxfTextHeight); err != nil {
			return err
		}
	}

	return nil
}

// drawRect adds an axis-aligned rectangle as four line entities.
func drawRect(d *drawing.Drawing, x, y, w, h float64) error {
	lines := [][4]float64{
		{x, y, x + w, y},
		{x + w, y, x + w, y + h},
		{x + w, y + h, x, y + h},
		{x, y + h, x, y},
	}
	for _, l := range lines {
		if _, err := d.Line(l[0], l[1], 0.0, l[2], l[3], 0.0); err != nil {
			return err
		}
	}
	return nil
}
