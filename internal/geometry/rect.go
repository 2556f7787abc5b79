// Package geometry provides the axis-aligned rectangle primitives used by
// the nesting engine: an overlap test and a rectangle subtraction that
// decomposes the residual area into up to four pieces.
package geometry

// Rect is an axis-aligned rectangle in board coordinates (mm).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

func (r Rect) Area() float64 { return r.Width * r.Height }

// IsValid reports whether the rectangle has positive area.
func (r Rect) IsValid() bool { return r.Width > 0 && r.Height > 0 }

// Intersects reports whether two rectangles overlap. Edges are half-open:
// rectangles that only touch along an edge or at a corner do not intersect,
// so zero-kerf placements can abut without being treated as collisions.
func Intersects(r1, r2 Rect) bool {
	return !(r1.Right() <= r2.X ||
		r2.Right() <= r1.X ||
		r1.Bottom() <= r2.Y ||
		r2.Bottom() <= r1.Y)
}

// SubtractRect removes cut's area from original and returns the remaining
// pieces. When the two rectangles do not overlap the original is returned
// unchanged. Otherwise up to four residual rectangles are produced around
// the intersection, in left, right, bottom, top order; only pieces with
// positive area are included.
//
// The left and right pieces span the full height of the original while the
// bottom and top pieces are clipped to the intersection's x range. This is a
// guillotine decomposition, not a maximal-rectangle one, and the difference
// is observable in placement output, so the split must stay exactly as is.
func SubtractRect(original, cut Rect) []Rect {
	ix1 := max(original.X, cut.X)
	iy1 := max(original.Y, cut.Y)
	ix2 := min(original.Right(), cut.Right())
	iy2 := min(original.Bottom(), cut.Bottom())

	if ix2 <= ix1 || iy2 <= iy1 {
		return []Rect{original}
	}

	var result []Rect

	// Left piece, full height
	if original.X < ix1 {
		result = append(result, Rect{
			X:      original.X,
			Y:      original.Y,
			Width:  ix1 - original.X,
			Height: original.Height,
		})
	}

	// Right piece, full height
	if original.Right() > ix2 {
		result = append(result, Rect{
			X:      ix2,
			Y:      original.Y,
			Width:  original.Right() - ix2,
			Height: original.Height,
		})
	}

	// Bottom piece, clipped to the intersection's x range
	if original.Y < iy1 {
		result = append(result, Rect{
			X:      ix1,
			Y:      original.Y,
			Width:  ix2 - ix1,
			Height: iy1 - original.Y,
		})
	}

	// Top piece, clipped to the intersection's x range
	if original.Bottom() > iy2 {
		result = append(result, Rect{
			X:      ix1,
			Y:      iy2,
			Width:  ix2 - ix1,
			Height: original.Bottom() - iy2,
		})
	}

	return result
}
