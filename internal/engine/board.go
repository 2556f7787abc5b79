package engine

import (
	"math"
	"sort"

	"github.com/nestcut/nestcut/internal/geometry"
	"github.com/nestcut/nestcut/internal/model"
)

// Tolerances used by the free-space model. fullSheetTolerance allows a part
// cut to the exact sheet size to take the whole board; ySortTolerance
// groups free rectangles on (almost) the same row before the x tie-break.
const (
	fullSheetTolerance = 0.1
	ySortTolerance     = 0.01
)

// Board is one stock sheet being filled. It owns its free-rectangle list;
// the placed parts are non-owning references into the caller's part set.
//
// Invariant: the free rectangles are valid, pairwise disjoint, inside the
// board bounds, and together cover exactly the area not occupied by any
// kerf-expanded placed part.
type Board struct {
	ID        int
	Material  string
	Width     float64
	Height    float64
	FreeRects []geometry.Rect
	Placed    []*model.Part
}

// NewBoard creates a board whose free space is one rectangle covering the
// whole sheet.
func NewBoard(id int, material string, w, h float64) *Board {
	return &Board{
		ID:        id,
		Material:  material,
		Width:     w,
		Height:    h,
		FreeRects: []geometry.Rect{geometry.NewRect(0, 0, w, h)},
	}
}

// FindBestPosition returns the bottom-left position where a part of the
// given effective dimensions fits, or ok=false when nothing fits.
//
// An empty board accepts a part matching the full sheet dimensions (within
// fullSheetTolerance) at the origin with no kerf: a full-sheet part needs
// no internal clearance. Otherwise the free rectangles are scanned in their
// current order, which is kept sorted bottom-left (y then x), and the first
// rectangle that fits the kerf-expanded part wins. First fit, not best fit.
func (b *Board) FindBestPosition(partWidth, partHeight, kerf float64) (x, y float64, ok bool) {
	if len(b.Placed) == 0 &&
		math.Abs(partWidth-b.Width) < fullSheetTolerance &&
		math.Abs(partHeight-b.Height) < fullSheetTolerance {
		return 0, 0, true
	}

	effectiveWidth := partWidth + kerf
	effectiveHeight := partHeight + kerf

	for _, rect := range b.FreeRects {
		if effectiveWidth <= rect.Width && effectiveHeight <= rect.Height {
			if rect.X+effectiveWidth <= b.Width && rect.Y+effectiveHeight <= b.Height {
				return rect.X, rect.Y, true
			}
		}
	}

	return 0, 0, false
}

// AddPart commits a placement: it records the position and board on the
// part and carves the part's kerf-expanded footprint out of the free space.
//
// The kerf margin is added on the top and right side of the placed
// rectangle only, never symmetrically. The asymmetry is intentional and
// observable in the resulting layouts; it must not be "fixed".
func (b *Board) AddPart(part *model.Part, x, y, kerf float64) {
	part.X = x
	part.Y = y
	part.BoardID = b.ID
	b.Placed = append(b.Placed, part)

	w, h := model.RotatedDimensions(part.Width, part.Height, part.Rotation)
	placedRect := geometry.NewRect(x, y, w+kerf, h+kerf)

	updated := make([]geometry.Rect, 0, len(b.FreeRects)+3)
	for _, free := range b.FreeRects {
		if !geometry.Intersects(free, placedRect) {
			updated = append(updated, free)
			continue
		}
		for _, piece := range geometry.SubtractRect(free, placedRect) {
			if piece.IsValid() {
				updated = append(updated, piece)
			}
		}
	}
	b.FreeRects = updated

	b.sortFreeRects()
}

// sortFreeRects orders the free rectangles bottom-left: ascending y, with x
// as the tie-break for rectangles whose y values are within ySortTolerance.
func (b *Board) sortFreeRects() {
	sort.Slice(b.FreeRects, func(i, j int) bool {
		a, c := b.FreeRects[i], b.FreeRects[j]
		if math.Abs(a.Y-c.Y) < ySortTolerance {
			return a.X < c.X
		}
		return a.Y < c.Y
	})
}

// UsedArea returns the summed unrotated area of the placed parts.
func (b *Board) UsedArea() float64 {
	var total float64
	for _, p := range b.Placed {
		total += p.Area()
	}
	return total
}

// TotalArea returns the board area.
func (b *Board) TotalArea() float64 { return b.Width * b.Height }

// WastePercentage returns the share of the board not covered by parts.
func (b *Board) WastePercentage() float64 {
	total := b.TotalArea()
	if total == 0 {
		return 0
	}
	return (total - b.UsedArea()) / total * 100.0
}
