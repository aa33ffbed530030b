package output

import (
	"math"

	"github.com/rpgo/share-projector/internal/domain"
)

// ProjectionSummary condenses the last row of a table into headline figures.
type ProjectionSummary struct {
	FinalHorizon int
	FinalYear    int
	TotalShares  float64
	Low          domain.PercentileValue
	Median       float64
	HasMedian    bool
	High         domain.PercentileValue
	// MedianPriceCAGR is the annualized growth of the median per-share price
	// against the initial price; valid only when HasPriceCAGR is true.
	MedianPriceCAGR float64
	HasPriceCAGR    bool
}

// SummarizeProjection extracts headline figures from the final horizon.
// Extracted from the formatters for testability.
func SummarizeProjection(report *domain.ProjectionReport) ProjectionSummary {
	t := report.Table
	if t == nil || len(t.Rows) == 0 {
		return ProjectionSummary{}
	}
	last := t.Rows[len(t.Rows)-1]
	s := ProjectionSummary{
		FinalHorizon: last.Horizon,
		FinalYear:    report.CalendarYear(last.Horizon),
		TotalShares:  last.TotalShares,
	}
	if len(last.Values) > 0 {
		s.Low = last.Values[0]
		s.High = last.Values[len(last.Values)-1]
	}
	s.Median, s.HasMedian = last.Value(0.50)

	initial := t.Parameters.InitialPrice
	if price, ok := last.MedianPrice(); ok && last.Horizon > 0 && initial > 0 && price > 0 {
		s.MedianPriceCAGR = math.Pow(price/initial, 1/float64(last.Horizon)) - 1
		s.HasPriceCAGR = true
	}
	return s
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
