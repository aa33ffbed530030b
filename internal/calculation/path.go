package calculation

import "github.com/rpgo/share-projector/internal/domain"

// PathSimulator runs single trajectories of contributions plus stochastic price growth.
type PathSimulator struct {
	Normal   *NormalGenerator
	Schedule GrowthSchedule
	Model    GrowthModel
}

// NewPathSimulator wires a simulator for params drawing from gen.
func NewPathSimulator(params domain.SimulationParameters, gen *NormalGenerator) (*PathSimulator, error) {
	model, err := GrowthModelByName(params.GrowthModel)
	if err != nil {
		return nil, err
	}
	return &PathSimulator{
		Normal:   gen,
		Schedule: NewGrowthSchedule(params),
		Model:    model,
	}, nil
}

// Simulate returns the ending portfolio value (shares * price) after horizon years.
// A zero horizon returns the baseline without drawing any randomness.
func (ps *PathSimulator) Simulate(params domain.SimulationParameters, horizon int) float64 {
	price := params.InitialPrice
	shares := params.InitialShares
	if horizon <= 0 {
		return shares * price
	}

	rate := params.BaseGrowthRate
	for year := 1; year <= horizon; year++ {
		// contribution lands before the year's price move
		shares += params.AnnualShares
		z := ps.Normal.Next()
		price = ps.Model.Step(price, rate, params.AnnualVolatility, z)
		rate = ps.Schedule.NextRate(rate)
	}
	return shares * price
}
