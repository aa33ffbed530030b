package domain

import "time"

// PercentileValue is one percentile band of the ending-value distribution.
type PercentileValue struct {
	Percentile float64 `json:"percentile"`
	Value      float64 `json:"value"`
}

// YearRow summarizes the simulated outcome distribution for one horizon.
type YearRow struct {
	Horizon     int               `json:"horizon"`
	TotalShares float64           `json:"total_shares"`
	Values      []PercentileValue `json:"values"`
}

// Value returns the portfolio value at percentile p.
func (r YearRow) Value(p float64) (float64, bool) {
	for _, pv := range r.Values {
		if pv.Percentile == p {
			return pv.Value, true
		}
	}
	return 0, false
}

// MedianPrice derives the per-share price from the 50th percentile value.
// It reports false when the median is not configured or no shares are held.
func (r YearRow) MedianPrice() (float64, bool) {
	median, ok := r.Value(0.50)
	if !ok || r.TotalShares == 0 {
		return 0, false
	}
	return median / r.TotalShares, true
}

// ProjectionTable is the full per-horizon result of one projection run.
// Row 0 is the deterministic baseline; rows are in ascending horizon order.
type ProjectionTable struct {
	Parameters SimulationParameters `json:"parameters"`
	Rows       []YearRow            `json:"rows"`
}

// Percentiles returns the configured percentile keys in order.
func (t *ProjectionTable) Percentiles() []float64 {
	return t.Parameters.Percentiles
}

// Row returns the row for the given horizon.
func (t *ProjectionTable) Row(horizon int) (YearRow, bool) {
	for _, r := range t.Rows {
		if r.Horizon == horizon {
			return r, true
		}
	}
	return YearRow{}, false
}

// ProjectionReport couples a table with the presentation context used by formatters.
type ProjectionReport struct {
	Table        *ProjectionTable `json:"table"`
	BaselineYear int              `json:"baseline_year"`
	GeneratedAt  time.Time        `json:"generated_at"`
}

// CalendarYear maps a horizon to the calendar year shown to the user.
func (r *ProjectionReport) CalendarYear(horizon int) int {
	return r.BaselineYear + horizon
}
