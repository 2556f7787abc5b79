package model

import "math"

// PurchaseEstimate holds the results of a board purchasing calculation for
// one material, computed from areas before any nesting runs.
type PurchaseEstimate struct {
	Material          string  `json:"material"`
	TotalPartArea     float64 `json:"total_part_area"`     // Total area of all parts (sq mm)
	BoardArea         float64 `json:"board_area"`          // Area of one board (sq mm)
	BoardsNeededExact float64 `json:"boards_needed_exact"` // Exact fractional number of boards
	BoardsNeededMin   int     `json:"boards_needed_min"`   // Minimum boards (ceiling of exact)
	BoardsWithWaste   int     `json:"boards_with_waste"`   // Recommended boards including waste factor
	WastePercent      float64 `json:"waste_percent"`       // Waste factor applied (e.g., 15 for 15%)
	KerfWidth         float64 `json:"kerf_width"`          // Kerf width used in calculation
}

// EstimatePurchase computes how many boards to buy for the given part specs
// of one material. It accounts for kerf waste per part and an additional
// waste percentage factor. The actual nest may need more boards than this
// area-based lower bound suggests.
func EstimatePurchase(material string, parts []PartSpec, board BoardSpec, kerfWidth, wastePercent float64) PurchaseEstimate {
	var totalPartArea float64
	for _, p := range parts {
		if p.Material != material {
			continue
		}
		qty := p.Quantity
		if qty < 1 {
			qty = 1
		}
		partW := p.Width + kerfWidth
		partH := p.Height + kerfWidth
		totalPartArea += partW * partH * float64(qty)
	}

	boardArea := board.Width * board.Height
	if boardArea <= 0 {
		return PurchaseEstimate{
			Material:      material,
			TotalPartArea: totalPartArea,
			WastePercent:  wastePercent,
			KerfWidth:     kerfWidth,
		}
	}

	exactBoards := totalPartArea / boardArea
	minBoards := int(math.Ceil(exactBoards))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	boardsWithWaste := int(math.Ceil(exactBoards * wasteFactor))
	if boardsWithWaste < minBoards {
		boardsWithWaste = minBoards
	}

	return PurchaseEstimate{
		Material:          material,
		TotalPartArea:     totalPartArea,
		BoardArea:         boardArea,
		BoardsNeededExact: exactBoards,
		BoardsNeededMin:   minBoards,
		BoardsWithWaste:   boardsWithWaste,
		WastePercent:      wastePercent,
		KerfWidth:         kerfWidth,
	}
}

// EstimateAll computes purchase estimates for every material in a request.
func (r NestRequest) EstimateAll(kerfWidth, wastePercent float64) []PurchaseEstimate {
	sizes := r.BoardSizes()
	var materials []string
	seen := map[string]bool{}
	for _, p := range r.Parts {
		if !seen[p.Material] {
			seen[p.Material] = true
			materials = append(materials, p.Material)
		}
	}

	estimates := make([]PurchaseEstimate, 0, len(materials))
	for _, m := range materials {
		estimates = append(estimates, EstimatePurchase(m, r.Parts, sizes.Lookup(m), kerfWidth, wastePercent))
	}
	return estimates
}
