package calculation

import (
	"context"
	"fmt"
	"sort"

	"github.com/rpgo/share-projector/internal/domain"
)

// ProjectionBuilder assembles a full per-year percentile table.
type ProjectionBuilder struct {
	Aggregator *MonteCarloAggregator
	Logger     Logger
}

// NewProjectionBuilder creates a builder backed by a fresh aggregator.
func NewProjectionBuilder(seed int64, workers int) *ProjectionBuilder {
	return &ProjectionBuilder{
		Aggregator: NewMonteCarloAggregator(seed, workers),
		Logger:     NopLogger{},
	}
}

// SetLogger sets the logger for the builder and its aggregator. If nil is provided, a no-op logger is used.
func (pb *ProjectionBuilder) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	pb.Logger = l
	pb.Aggregator.SetLogger(l)
}

// DefaultHorizons returns the years 1..30.
func DefaultHorizons() []int {
	return domain.HorizonRange(domain.DefaultMaxHorizon)
}

// Build simulates every horizon and returns the table, with the deterministic
// baseline as row 0. Nil or empty horizons select DefaultHorizons. The whole
// table is rebuilt on every call; no partial table is ever returned.
func (pb *ProjectionBuilder) Build(ctx context.Context, params domain.SimulationParameters, horizons []int) (*domain.ProjectionTable, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	ordered, err := normalizeHorizons(horizons)
	if err != nil {
		return nil, err
	}

	snapshot := params.Clone()
	table := &domain.ProjectionTable{
		Parameters: snapshot,
		Rows:       make([]domain.YearRow, 0, len(ordered)+1),
	}
	table.Rows = append(table.Rows, baselineRow(snapshot))

	for _, h := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		values, err := pb.Aggregator.Aggregate(ctx, snapshot, h)
		if err != nil {
			return nil, fmt.Errorf("horizon %d: %w", h, err)
		}
		table.Rows = append(table.Rows, domain.YearRow{
			Horizon:     h,
			TotalShares: snapshot.TotalShares(h),
			Values:      values,
		})
	}

	pb.Logger.Infof("built projection: %d horizons, %d paths each, model=%s", len(ordered), snapshot.NumPaths, snapshot.Model())
	return table, nil
}

// baselineRow is horizon 0: no randomness, every percentile equals shares*price.
func baselineRow(params domain.SimulationParameters) domain.YearRow {
	base := params.BaselineValue()
	values := make([]domain.PercentileValue, len(params.Percentiles))
	for i, p := range params.Percentiles {
		values[i] = domain.PercentileValue{Percentile: p, Value: base}
	}
	return domain.YearRow{
		Horizon:     0,
		TotalShares: params.InitialShares,
		Values:      values,
	}
}

func normalizeHorizons(horizons []int) ([]int, error) {
	if len(horizons) == 0 {
		return DefaultHorizons(), nil
	}
	ordered := append([]int(nil), horizons...)
	sort.Ints(ordered)
	for i, h := range ordered {
		if h < 1 {
			return nil, fmt.Errorf("%w: horizons must be at least 1, got %d", domain.ErrInvalidParameter, h)
		}
		if i > 0 && h == ordered[i-1] {
			return nil, fmt.Errorf("%w: duplicate horizon %d", domain.ErrInvalidParameter, h)
		}
	}
	return ordered, nil
}
