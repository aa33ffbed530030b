package calculation

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/rpgo/share-projector/internal/domain"
)

// pathsPerChunk fixes chunk boundaries so results depend on the seed, not on Workers.
const pathsPerChunk = 250

// MonteCarloAggregator runs many independent paths for a horizon and extracts percentiles.
type MonteCarloAggregator struct {
	// Workers bounds the number of chunks simulated concurrently.
	Workers int
	// Seed is the master seed; every (horizon, chunk) pair gets its own derived stream.
	Seed   int64
	Logger Logger
}

// NewMonteCarloAggregator creates an aggregator. A zero seed draws one from seedFunc
// and a non-positive worker count uses GOMAXPROCS.
func NewMonteCarloAggregator(seed int64, workers int) *MonteCarloAggregator {
	if seed == 0 {
		seed = seedFunc()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &MonteCarloAggregator{
		Workers: workers,
		Seed:    seed,
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (mca *MonteCarloAggregator) SetLogger(l Logger) {
	if l == nil {
		mca.Logger = NopLogger{}
		return
	}
	mca.Logger = l
}

// Aggregate simulates params.NumPaths paths over horizon years and returns the
// value at each configured percentile. Invalid parameters are rejected before
// any path is simulated.
func (mca *MonteCarloAggregator) Aggregate(ctx context.Context, params domain.SimulationParameters, horizon int) ([]domain.PercentileValue, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if horizon < 0 {
		return nil, fmt.Errorf("%w: horizon cannot be negative, got %d", domain.ErrInvalidParameter, horizon)
	}

	values, err := mca.simulatePaths(ctx, params, horizon)
	if err != nil {
		return nil, err
	}
	sort.Float64s(values)
	return EmpiricalPercentiles(values, params.Percentiles), nil
}

// simulatePaths returns the unsorted ending values of every path.
func (mca *MonteCarloAggregator) simulatePaths(ctx context.Context, params domain.SimulationParameters, horizon int) ([]float64, error) {
	n := params.NumPaths
	values := make([]float64, n)
	numChunks := (n + pathsPerChunk - 1) / pathsPerChunk

	workers := mca.Workers
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error
	semaphore := make(chan struct{}, workers)

	for c := 0; c < numChunks; c++ {
		start := c * pathsPerChunk
		end := min(start+pathsPerChunk, n)

		wg.Add(1)
		go func(chunk, start, end int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := ctx.Err(); err != nil {
				return
			}
			gen := NewSeededNormalGenerator(deriveSeed(mca.Seed, uint64(horizon), uint64(chunk)))
			sim, err := NewPathSimulator(params, gen)
			if err != nil {
				once.Do(func() { firstErr = err })
				return
			}
			for i := start; i < end; i++ {
				values[i] = sim.Simulate(params, horizon)
			}
		}(c, start, end)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}
	mca.Logger.Debugf("simulated %d paths over %d years in %d chunks", n, horizon, numChunks)
	return values, nil
}

// EmpiricalPercentiles selects sorted[floor(p*n)] for each p, clamping the index
// to n-1. No interpolation is performed. sorted must be ascending and non-empty.
func EmpiricalPercentiles(sorted []float64, percentiles []float64) []domain.PercentileValue {
	n := len(sorted)
	out := make([]domain.PercentileValue, 0, len(percentiles))
	for _, p := range percentiles {
		idx := int(math.Floor(p * float64(n)))
		if idx > n-1 {
			idx = n - 1
		}
		if idx < 0 {
			idx = 0
		}
		out = append(out, domain.PercentileValue{Percentile: p, Value: sorted[idx]})
	}
	return out
}

// deriveSeed mixes the master seed with a stream and index using splitmix64 so
// neighbouring chunks and horizons get decorrelated generators.
func deriveSeed(master int64, stream, index uint64) int64 {
	x := uint64(master)
	x ^= splitmix64(stream + 0x9e3779b97f4a7c15)
	x ^= splitmix64(index + 0xbf58476d1ce4e5b9)
	return int64(splitmix64(x))
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
