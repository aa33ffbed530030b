package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is returned when simulation parameters fall outside their domain.
// Callers should test for it with errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// Growth model identifiers
const (
	GrowthModelAdditive  = "additive"
	GrowthModelLognormal = "lognormal"
)

// DefaultPercentiles are the percentile bands reported when none are configured.
var DefaultPercentiles = []float64{0.10, 0.50, 0.90}

// DefaultMaxHorizon is the number of projected years in a default table.
const DefaultMaxHorizon = 30

// SimulationParameters holds one immutable snapshot of the projection inputs.
// Rates are fractions (0.10 == 10%).
type SimulationParameters struct {
	InitialPrice     float64   `yaml:"initial_price" json:"initial_price"`
	InitialShares    float64   `yaml:"initial_shares" json:"initial_shares"`
	AnnualShares     float64   `yaml:"annual_shares" json:"annual_shares"`
	BaseGrowthRate   float64   `yaml:"base_growth_rate" json:"base_growth_rate"`
	GrowthDecay      float64   `yaml:"growth_decay" json:"growth_decay"`
	GrowthFloor      float64   `yaml:"growth_floor" json:"growth_floor"`
	AnnualVolatility float64   `yaml:"annual_volatility" json:"annual_volatility"`
	NumPaths         int       `yaml:"num_paths" json:"num_paths"`
	Percentiles      []float64 `yaml:"percentiles" json:"percentiles"`

	// GrowthModel selects the per-year price step; empty means additive.
	GrowthModel string `yaml:"growth_model,omitempty" json:"growth_model,omitempty"`
}

// DefaultParameters returns the parameter set used when the caller supplies nothing.
func DefaultParameters() SimulationParameters {
	return SimulationParameters{
		InitialPrice:     100,
		InitialShares:    0,
		AnnualShares:     50,
		BaseGrowthRate:   0.10,
		AnnualVolatility: 0.10,
		NumPaths:         1000,
		Percentiles:      append([]float64(nil), DefaultPercentiles...),
		GrowthModel:      GrowthModelAdditive,
	}
}

// Clone returns a copy that shares no slices with p.
func (p SimulationParameters) Clone() SimulationParameters {
	c := p
	c.Percentiles = append([]float64(nil), p.Percentiles...)
	return c
}

// Model returns the effective growth model name.
func (p SimulationParameters) Model() string {
	if p.GrowthModel == "" {
		return GrowthModelAdditive
	}
	return p.GrowthModel
}

// BaselineValue is the deterministic year-0 portfolio value.
func (p SimulationParameters) BaselineValue() float64 {
	return p.InitialShares * p.InitialPrice
}

// TotalShares is the share count after horizon years of contributions.
func (p SimulationParameters) TotalShares(horizon int) float64 {
	return p.InitialShares + p.AnnualShares*float64(horizon)
}

// Validate checks every field against its domain. The returned error wraps
// ErrInvalidParameter and names the first offending field.
func (p SimulationParameters) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"initial_price", p.InitialPrice},
		{"initial_shares", p.InitialShares},
		{"annual_shares", p.AnnualShares},
		{"base_growth_rate", p.BaseGrowthRate},
		{"growth_decay", p.GrowthDecay},
		{"growth_floor", p.GrowthFloor},
		{"annual_volatility", p.AnnualVolatility},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return invalidf("%s must be a finite number", f.name)
		}
	}

	if p.InitialPrice < 0 {
		return invalidf("initial_price cannot be negative")
	}
	if p.InitialShares < 0 {
		return invalidf("initial_shares cannot be negative")
	}
	if p.GrowthDecay < 0 || p.GrowthDecay > 1 {
		return invalidf("growth_decay must be between 0 and 1")
	}
	if p.GrowthFloor < 0 {
		return invalidf("growth_floor cannot be negative")
	}
	if p.AnnualVolatility < 0 {
		return invalidf("annual_volatility cannot be negative")
	}
	if p.NumPaths <= 0 {
		return invalidf("num_paths must be positive, got %d", p.NumPaths)
	}
	if len(p.Percentiles) == 0 {
		return invalidf("percentiles must not be empty")
	}
	for i, pct := range p.Percentiles {
		if math.IsNaN(pct) || pct <= 0 || pct >= 1 {
			return invalidf("percentile %v must be strictly between 0 and 1", pct)
		}
		if i > 0 && pct <= p.Percentiles[i-1] {
			return invalidf("percentiles must be strictly ascending (%v after %v)", pct, p.Percentiles[i-1])
		}
	}
	switch p.Model() {
	case GrowthModelAdditive, GrowthModelLognormal:
	default:
		return invalidf("growth_model must be %q or %q, got %q", GrowthModelAdditive, GrowthModelLognormal, p.GrowthModel)
	}
	return nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
