package output

import (
	"math"
	"testing"

	"github.com/rpgo/share-projector/internal/domain"
)

func TestSummarizeProjectionUsesFinalRow(t *testing.T) {
	s := SummarizeProjection(buildTestReport())
	if s.FinalHorizon != 2 || s.FinalYear != 2025 || s.TotalShares != 110 {
		t.Fatalf("unexpected summary header: %+v", s)
	}
	if s.Low.Value != 10500 || s.High.Value != 16800 {
		t.Fatalf("unexpected band: %+v %+v", s.Low, s.High)
	}
	if !s.HasMedian || s.Median != 13310 {
		t.Fatalf("unexpected median: %+v", s)
	}
	// 13310 / 110 = 121 = 100 * 1.1^2
	if !s.HasPriceCAGR || math.Abs(s.MedianPriceCAGR-0.10) > 1e-9 {
		t.Fatalf("expected 10%% CAGR, got %v", s.MedianPriceCAGR)
	}
}

func TestSummarizeProjectionWithoutMedian(t *testing.T) {
	r := buildTestReport()
	r.Table.Parameters.Percentiles = []float64{0.1, 0.9}
	for i := range r.Table.Rows {
		vals := r.Table.Rows[i].Values
		r.Table.Rows[i].Values = []domain.PercentileValue{vals[0], vals[2]}
	}
	s := SummarizeProjection(r)
	if s.HasMedian || s.HasPriceCAGR {
		t.Fatalf("expected no median figures, got %+v", s)
	}
}

func TestSummarizeProjectionEmpty(t *testing.T) {
	s := SummarizeProjection(&domain.ProjectionReport{})
	if s.FinalHorizon != 0 || s.HasMedian {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestGenerateAssumptionsMentionsModel(t *testing.T) {
	p := domain.DefaultParameters()
	p.GrowthModel = domain.GrowthModelLognormal
	p.GrowthDecay = 0.05
	p.GrowthFloor = 0.04
	got := GenerateAssumptions(p)
	if len(got) != 6 {
		t.Fatalf("expected 6 assumptions, got %d", len(got))
	}
	if got[3] != "Growth decays 5.00% per year toward a floor of 4.00% (4.00% by year 30)" {
		t.Fatalf("unexpected decay line: %s", got[3])
	}
}
