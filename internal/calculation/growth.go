package calculation

import (
	"fmt"
	"math"

	"github.com/rpgo/share-projector/internal/domain"
)

// GrowthSchedule evolves the expected growth rate from one simulated year to the next.
type GrowthSchedule struct {
	Decay float64
	Floor float64
}

// NewGrowthSchedule builds the schedule described by the parameters.
func NewGrowthSchedule(params domain.SimulationParameters) GrowthSchedule {
	return GrowthSchedule{Decay: params.GrowthDecay, Floor: params.GrowthFloor}
}

// NextRate returns next year's rate: max(current*(1-decay), floor).
// Zero decay is the constant-rate schedule: the rate is returned unchanged, so a
// negative base rate is not lifted to the floor.
func (s GrowthSchedule) NextRate(current float64) float64 {
	if s.Decay == 0 {
		return current
	}
	return math.Max(current*(1-s.Decay), s.Floor)
}

// RateForYear returns the rate applied in year k (1-based), starting from base.
func (s GrowthSchedule) RateForYear(base float64, k int) float64 {
	rate := base
	for year := 1; year < k; year++ {
		rate = s.NextRate(rate)
	}
	return rate
}

// GrowthModel applies one year's stochastic price move.
type GrowthModel interface {
	Step(price, rate, volatility, z float64) float64
	Name() string
}

// AdditiveShockModel moves price by price*(1 + rate + vol*z). Prices may go negative.
type AdditiveShockModel struct{}

func (AdditiveShockModel) Name() string { return domain.GrowthModelAdditive }

func (AdditiveShockModel) Step(price, rate, volatility, z float64) float64 {
	return price * (1 + rate + volatility*z)
}

// LognormalModel is the geometric Brownian motion step price*exp(rate - vol²/2 + vol*z).
type LognormalModel struct{}

func (LognormalModel) Name() string { return domain.GrowthModelLognormal }

func (LognormalModel) Step(price, rate, volatility, z float64) float64 {
	return price * math.Exp(rate-volatility*volatility/2+volatility*z)
}

// GrowthModelByName resolves a model identifier; empty selects the additive model.
func GrowthModelByName(name string) (GrowthModel, error) {
	switch name {
	case "", domain.GrowthModelAdditive:
		return AdditiveShockModel{}, nil
	case domain.GrowthModelLognormal:
		return LognormalModel{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown growth model %q", domain.ErrInvalidParameter, name)
	}
}
