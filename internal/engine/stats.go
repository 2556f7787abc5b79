package engine

import "gonum.org/v1/gonum/stat"

// Summary holds aggregate statistics over a set of nested boards.
type Summary struct {
	TotalBoards       int     `json:"total_boards"`
	TotalParts        int     `json:"total_parts"`
	UsedArea          float64 `json:"used_area"`
	TotalArea         float64 `json:"total_area"`
	OverallEfficiency float64 `json:"overall_efficiency"` // percent of board area covered by parts
	MeanWaste         float64 `json:"mean_waste"`         // mean per-board waste percentage
	WasteStdDev       float64 `json:"waste_std_dev"`      // spread of per-board waste
}

// Summarize computes aggregate statistics for a nesting run. Waste mean and
// standard deviation are over per-board waste percentages, so a run with
// one nearly-full board and one nearly-empty board is distinguishable from
// two half-full boards at the same overall efficiency.
func Summarize(boards []*Board) Summary {
	s := Summary{TotalBoards: len(boards)}
	if len(boards) == 0 {
		return s
	}

	waste := make([]float64, len(boards))
	for i, b := range boards {
		s.TotalParts += len(b.Placed)
		s.UsedArea += b.UsedArea()
		s.TotalArea += b.TotalArea()
		waste[i] = b.WastePercentage()
	}

	if s.TotalArea > 0 {
		s.OverallEfficiency = s.UsedArea / s.TotalArea * 100.0
	}
	s.MeanWaste = stat.Mean(waste, nil)
	if len(waste) > 1 {
		s.WasteStdDev = stat.StdDev(waste, nil)
	}
	return s
}

// MaterialSummary pairs a material with the statistics of its boards.
type MaterialSummary struct {
	Material string `json:"material"`
	Summary
}

// SummarizeByMaterial computes statistics per material, in the result's
// material order.
func SummarizeByMaterial(r Result) []MaterialSummary {
	out := make([]MaterialSummary, 0, len(r.Materials))
	for _, m := range r.Materials {
		out = append(out, MaterialSummary{Material: m.Material, Summary: Summarize(m.Boards)})
	}
	return out
}
