// Package engine implements the multi-board nesting algorithm: a
// first-fit, bottom-left free-rectangle packer driven largest-part-first,
// opening boards per material until every part is placed or a part proves
// unplaceable on an empty board.
package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nestcut/nestcut/internal/model"
)

// UnplaceableError reports a part that does not fit a freshly opened,
// otherwise empty board in any allowed rotation. Nesting for the affected
// material stops; boards completed before the failure remain valid.
type UnplaceableError struct {
	PartID      string
	PartWidth   float64
	PartHeight  float64
	BoardWidth  float64
	BoardHeight float64
	Material    string
}

func (e *UnplaceableError) Error() string {
	return fmt.Sprintf("unable to place part %q (%gx%gmm) on board (%gx%gmm) for material %q",
		e.PartID, e.PartWidth, e.PartHeight, e.BoardWidth, e.BoardHeight, e.Material)
}

// ProgressFunc receives placement progress. The engine itself never logs;
// drivers that want progress output install a callback.
type ProgressFunc func(material string, placed, total, boards int)

// Nester runs the nesting algorithm for one or more materials.
type Nester struct {
	Settings model.Settings

	// Progress, when set, is called after each successful placement.
	Progress ProgressFunc
}

func New(settings model.Settings) *Nester {
	return &Nester{Settings: settings}
}

// TryPlacePart attempts to place a part on a board, trying each allowed
// rotation in order (0 before 90 when both are permitted). On the first
// rotation that fits, the placement is committed and true is returned. On
// failure the part is left exactly as it was: rotated dimensions are
// derived, never stored, so there is no state to restore.
func (n *Nester) TryPlacePart(part *model.Part, board *Board) bool {
	for _, rotation := range part.AllowedRotations {
		w, h := model.RotatedDimensions(part.Width, part.Height, rotation)
		if x, y, ok := board.FindBestPosition(w, h, n.Settings.KerfWidth); ok {
			part.Rotation = rotation
			board.AddPart(part, x, y, n.Settings.KerfWidth)
			return true
		}
	}
	return false
}

// NestParts packs the given parts onto boards of the given dimensions for
// one material. Parts are attempted largest-area-first (stable for ties).
// Boards get sequential ids starting at 1. A pass that places nothing on a
// fresh board while parts remain means the first queued part can never be
// placed: the empty board is discarded and an *UnplaceableError is returned
// together with the boards completed so far.
func (n *Nester) NestParts(parts []*model.Part, material string, boardWidth, boardHeight float64) ([]*Board, error) {
	sorted := make([]*model.Part, len(parts))
	copy(sorted, parts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Area() > sorted[j].Area()
	})

	var boards []*Board
	queue := sorted
	total := len(sorted)
	placedCount := 0
	boardID := 0

	for len(queue) > 0 {
		boardID++
		board := NewBoard(boardID, material, boardWidth, boardHeight)

		var nextQueue []*model.Part
		for _, part := range queue {
			if n.TryPlacePart(part, board) {
				placedCount++
				if n.Progress != nil {
					n.Progress(material, placedCount, total, boardID)
				}
			} else {
				nextQueue = append(nextQueue, part)
			}
		}

		if len(board.Placed) == 0 {
			// Fresh board, nothing placed: the head of the queue is unplaceable.
			problem := queue[0]
			return boards, &UnplaceableError{
				PartID:      problem.ID,
				PartWidth:   problem.Width,
				PartHeight:  problem.Height,
				BoardWidth:  boardWidth,
				BoardHeight: boardHeight,
				Material:    material,
			}
		}

		boards = append(boards, board)
		queue = nextQueue
	}

	return boards, nil
}

// MaterialResult holds the outcome for one material: the completed boards
// and, when nesting stopped early, the unplaceable diagnostic.
type MaterialResult struct {
	Material string
	Boards   []*Board
	Err      *UnplaceableError
}

// Result aggregates the per-material outcomes of a full nesting run.
type Result struct {
	Materials []MaterialResult
}

// Boards returns all boards across materials, in material order.
func (r Result) Boards() []*Board {
	var all []*Board
	for _, m := range r.Materials {
		all = append(all, m.Boards...)
	}
	return all
}

// Failures returns the unplaceable diagnostics across materials.
func (r Result) Failures() []*UnplaceableError {
	var errs []*UnplaceableError
	for _, m := range r.Materials {
		if m.Err != nil {
			errs = append(errs, m.Err)
		}
	}
	return errs
}

// NestAll groups parts by material and nests each group on its material's
// board size. Materials share no state, so each one runs in its own
// goroutine; results are joined in sorted material order, making the output
// identical to sequential processing. A failure in one material does not
// affect the others.
func (n *Nester) NestAll(parts []*model.Part, sizes model.BoardSizes) Result {
	byMaterial := make(map[string][]*model.Part)
	var materials []string
	for _, p := range parts {
		if _, seen := byMaterial[p.Material]; !seen {
			materials = append(materials, p.Material)
		}
		byMaterial[p.Material] = append(byMaterial[p.Material], p)
	}
	sort.Strings(materials)

	results := make([]MaterialResult, len(materials))
	var wg sync.WaitGroup
	for i, material := range materials {
		wg.Add(1)
		go func(i int, material string) {
			defer wg.Done()
			spec := sizes.Lookup(material)
			boards, err := n.NestParts(byMaterial[material], material, spec.Width, spec.Height)
			res := MaterialResult{Material: material, Boards: boards}
			if err != nil {
				// NestParts only returns *UnplaceableError
				res.Err = err.(*UnplaceableError)
			}
			results[i] = res
		}(i, material)
	}
	wg.Wait()

	return Result{Materials: results}
}
