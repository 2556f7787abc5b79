package engine

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Offcut is a usable rectangular remnant left on a board after nesting.
type Offcut struct {
	ID       string  `json:"id"`
	Material string  `json:"material"`
	BoardID  int     `json:"board_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// Area returns the offcut area in square mm.
func (o Offcut) Area() float64 { return o.Width * o.Height }

// Remnants smaller than these thresholds are treated as waste.
const (
	MinOffcutDimension = 50.0
	MinOffcutArea      = 10000.0
)

// DetectOffcuts identifies the large remnant strips of a board: the strip
// to the right of all placed parts and the strip above them (clipped so the
// two do not overlap). Strips below the minimum dimension or area are
// dropped. Offcuts are returned largest first.
func DetectOffcuts(b *Board, kerf float64) []Offcut {
	if len(b.Placed) == 0 {
		return []Offcut{{
			ID:       uuid.New().String()[:8],
			Material: b.Material,
			BoardID:  b.ID,
			Width:    b.Width,
			Height:   b.Height,
		}}
	}

	var maxRight, maxTop float64
	for _, p := range b.Placed {
		right := p.X + p.PlacedWidth() + kerf
		top := p.Y + p.PlacedHeight() + kerf
		if right > maxRight {
			maxRight = right
		}
		if top > maxTop {
			maxTop = top
		}
	}

	var offcuts []Offcut

	rightStripW := b.Width - maxRight
	if rightStripW >= MinOffcutDimension && b.Height >= MinOffcutDimension && rightStripW*b.Height >= MinOffcutArea {
		offcuts = append(offcuts, Offcut{
			ID:       uuid.New().String()[:8],
			Material: b.Material,
			BoardID:  b.ID,
			X:        maxRight,
			Width:    rightStripW,
			Height:   b.Height,
		})
	}

	topStripH := b.Height - maxTop
	usableW := math.Min(maxRight, b.Width)
	if topStripH >= MinOffcutDimension && usableW >= MinOffcutDimension && topStripH*usableW >= MinOffcutArea {
		offcuts = append(offcuts, Offcut{
			ID:       uuid.New().String()[:8],
			Material: b.Material,
			BoardID:  b.ID,
			Y:        maxTop,
			Width:    usableW,
			Height:   topStripH,
		})
	}

	sort.Slice(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})

	return offcuts
}

// DetectAllOffcuts finds offcuts across all boards of a run.
func DetectAllOffcuts(boards []*Board, kerf float64) []Offcut {
	var all []Offcut
	for _, b := range boards {
		all = append(all, DetectOffcuts(b, kerf)...)
	}
	return all
}
