package calculation

import (
	"errors"
	"math"
	"testing"

	"github.com/rpgo/share-projector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthSchedule_ZeroDecayIsIdentity(t *testing.T) {
	s := GrowthSchedule{}
	for _, rate := range []float64{0.10, 0, -0.05, 0.3} {
		assert.Equal(t, rate, s.NextRate(rate))
	}
}

func TestGrowthSchedule_DecayAndFloor(t *testing.T) {
	s := GrowthSchedule{Decay: 0.5, Floor: 0.04}
	assert.InDelta(t, 0.10, s.NextRate(0.20), 1e-12)
	assert.Equal(t, 0.04, s.NextRate(0.06))
	// floor lifts a negative rate once decay is active
	assert.Equal(t, 0.04, s.NextRate(-0.02))
}

func TestGrowthSchedule_FullDecay(t *testing.T) {
	s := GrowthSchedule{Decay: 1, Floor: 0.02}
	assert.Equal(t, 0.02, s.NextRate(0.25))
}

func TestGrowthSchedule_FloorConvergence(t *testing.T) {
	s := GrowthSchedule{Decay: 0.1, Floor: 0.04}
	base := 0.30

	prev := s.RateForYear(base, 1)
	assert.Equal(t, base, prev, "first year uses the undecayed base rate")
	for k := 2; k <= 200; k++ {
		rate := s.RateForYear(base, k)
		require.LessOrEqual(t, rate, prev, "rate must be non-increasing (year %d)", k)
		require.GreaterOrEqual(t, rate, s.Floor)
		prev = rate
	}
	assert.InDelta(t, s.Floor, prev, 1e-12)
}

func TestGrowthModels_Step(t *testing.T) {
	add := AdditiveShockModel{}
	assert.InDelta(t, 125.0, add.Step(100, 0.10, 0.15, 1), 1e-9)
	assert.InDelta(t, 100*(1+0.10), add.Step(100, 0.10, 0, 3), 1e-9)

	ln := LognormalModel{}
	assert.InDelta(t, 100*math.Exp(0.10), ln.Step(100, 0.10, 0, 2), 1e-9)
	assert.InDelta(t, 100*math.Exp(0.10-0.02+0.2), ln.Step(100, 0.10, 0.2, 1), 1e-9)
	assert.Greater(t, ln.Step(100, -0.5, 0.5, -10), 0.0, "lognormal prices stay positive")
}

func TestGrowthModelByName(t *testing.T) {
	m, err := GrowthModelByName("")
	require.NoError(t, err)
	assert.Equal(t, domain.GrowthModelAdditive, m.Name())

	m, err = GrowthModelByName(domain.GrowthModelLognormal)
	require.NoError(t, err)
	assert.Equal(t, domain.GrowthModelLognormal, m.Name())

	_, err = GrowthModelByName("heston")
	assert.True(t, errors.Is(err, domain.ErrInvalidParameter))
}
