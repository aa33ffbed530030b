package output

import (
	"fmt"

	calc "github.com/rpgo/share-projector/internal/calculation"
	"github.com/rpgo/share-projector/internal/domain"
)

// GenerateAssumptions lists the modeling assumptions behind a table, rendered in
// the console and HTML outputs.
func GenerateAssumptions(p domain.SimulationParameters) []string {
	out := []string{
		fmt.Sprintf("Starting position: %s shares at %s", FormatShares(p.InitialShares), FormatCurrency(p.InitialPrice)),
		fmt.Sprintf("Contribution: %s shares per year, bought before each year's price move", FormatShares(p.AnnualShares)),
		fmt.Sprintf("Expected growth: %s per year, volatility %s", FormatPercentage(p.BaseGrowthRate), FormatPercentage(p.AnnualVolatility)),
	}
	if p.GrowthDecay > 0 {
		final := calc.NewGrowthSchedule(p).RateForYear(p.BaseGrowthRate, domain.DefaultMaxHorizon)
		out = append(out, fmt.Sprintf("Growth decays %s per year toward a floor of %s (%s by year %d)",
			FormatPercentage(p.GrowthDecay), FormatPercentage(p.GrowthFloor), FormatPercentage(final), domain.DefaultMaxHorizon))
	} else {
		out = append(out, "Growth rate held constant")
	}
	switch p.Model() {
	case domain.GrowthModelLognormal:
		out = append(out, "Price step: lognormal, price × exp(rate − vol²/2 + vol·z)")
	default:
		out = append(out, "Price step: additive shock, price × (1 + rate + vol·z); prices are not floored at zero")
	}
	out = append(out, fmt.Sprintf("%d simulated paths per year; percentiles are raw sample values", p.NumPaths))
	return out
}
