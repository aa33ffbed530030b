package config

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rpgo/share-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Query keys for the shareable parameter encoding. Rates are expressed in percent.
const (
	QueryInitialPrice     = "initialPrice"
	QueryInitialShares    = "initialShares"
	QueryAnnualShares     = "annualShares"
	QueryAnnualGrowthRate = "annualGrowthRate"
	QueryAnnualVolatility = "annualVolatility"
	QueryGrowthDecay      = "growthDecay"
	QueryGrowthFloor      = "growthFloor"
	QueryNumPaths         = "numPaths"
	QueryPercentiles      = "percentiles"
	QueryGrowthModel      = "growthModel"
)

// legacyPriceKey matches year-stamped price keys such as "2023Price".
var legacyPriceKey = regexp.MustCompile(`^[0-9]{4}Price$`)

var hundred = decimal.NewFromInt(100)

// DecodeQuery builds parameters from a query string. Absent or empty keys keep
// their DefaultParameters value; malformed values are rejected with
// domain.ErrInvalidParameter. The result is not range-checked.
func DecodeQuery(q url.Values) (domain.SimulationParameters, error) {
	p := domain.DefaultParameters()

	price := q.Get(QueryInitialPrice)
	if price == "" {
		price = legacyPrice(q)
	}

	fields := []struct {
		key     string
		raw     string
		percent bool
		dst     *float64
	}{
		{QueryInitialPrice, price, false, &p.InitialPrice},
		{QueryInitialShares, q.Get(QueryInitialShares), false, &p.InitialShares},
		{QueryAnnualShares, q.Get(QueryAnnualShares), false, &p.AnnualShares},
		{QueryAnnualGrowthRate, q.Get(QueryAnnualGrowthRate), true, &p.BaseGrowthRate},
		{QueryAnnualVolatility, q.Get(QueryAnnualVolatility), true, &p.AnnualVolatility},
		{QueryGrowthDecay, q.Get(QueryGrowthDecay), true, &p.GrowthDecay},
		{QueryGrowthFloor, q.Get(QueryGrowthFloor), true, &p.GrowthFloor},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		v, err := parseDecimal(f.key, f.raw, f.percent)
		if err != nil {
			return domain.SimulationParameters{}, err
		}
		*f.dst = v
	}

	if raw := strings.TrimSpace(q.Get(QueryNumPaths)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.SimulationParameters{}, fmt.Errorf("%w: %s: %q is not an integer", domain.ErrInvalidParameter, QueryNumPaths, raw)
		}
		p.NumPaths = n
	}

	if raw := strings.TrimSpace(q.Get(QueryPercentiles)); raw != "" {
		parts := strings.Split(raw, ",")
		pcts := make([]float64, 0, len(parts))
		for _, part := range parts {
			v, err := parseDecimal(QueryPercentiles, part, true)
			if err != nil {
				return domain.SimulationParameters{}, err
			}
			pcts = append(pcts, v)
		}
		p.Percentiles = pcts
	}

	if raw := strings.TrimSpace(q.Get(QueryGrowthModel)); raw != "" {
		p.GrowthModel = strings.ToLower(raw)
	}
	return p, nil
}

// EncodeQuery renders parameters with one key per field, as decimal strings.
func EncodeQuery(p domain.SimulationParameters) url.Values {
	q := url.Values{}
	q.Set(QueryInitialPrice, formatDecimal(p.InitialPrice, false))
	q.Set(QueryInitialShares, formatDecimal(p.InitialShares, false))
	q.Set(QueryAnnualShares, formatDecimal(p.AnnualShares, false))
	q.Set(QueryAnnualGrowthRate, formatDecimal(p.BaseGrowthRate, true))
	q.Set(QueryAnnualVolatility, formatDecimal(p.AnnualVolatility, true))
	q.Set(QueryGrowthDecay, formatDecimal(p.GrowthDecay, true))
	q.Set(QueryGrowthFloor, formatDecimal(p.GrowthFloor, true))
	q.Set(QueryNumPaths, strconv.Itoa(p.NumPaths))

	pcts := make([]string, len(p.Percentiles))
	for i, v := range p.Percentiles {
		pcts[i] = formatDecimal(v, true)
	}
	q.Set(QueryPercentiles, strings.Join(pcts, ","))
	q.Set(QueryGrowthModel, p.Model())
	return q
}

func parseDecimal(key, raw string, percent bool) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a decimal number", domain.ErrInvalidParameter, key, raw)
	}
	if percent {
		d = d.Div(hundred)
	}
	return d.InexactFloat64(), nil
}

func formatDecimal(v float64, percent bool) string {
	d := decimal.NewFromFloat(v)
	if percent {
		d = d.Mul(hundred)
	}
	return d.String()
}

// legacyPrice returns the value of the newest year-stamped price key, if any.
func legacyPrice(q url.Values) string {
	var keys []string
	for k := range q {
		if legacyPriceKey.MatchString(k) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return q.Get(keys[len(keys)-1])
}

// InputRange is an inclusive bound applied to raw user input.
type InputRange struct {
	Min float64
	Max float64
}

func (r InputRange) clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Input ranges accepted from interactive callers. Rates are fractions.
var (
	PriceRange         = InputRange{Min: 0, Max: 1000}
	InitialSharesRange = InputRange{Min: 0, Max: 1000}
	AnnualSharesRange  = InputRange{Min: 20, Max: 150}
	GrowthRateRange    = InputRange{Min: -0.05, Max: 0.30}
	VolatilityRange    = InputRange{Min: 0, Max: 0.50}
	GrowthDecayRange   = InputRange{Min: 0, Max: 1}
	GrowthFloorRange   = InputRange{Min: 0, Max: 0.30}
	NumPathsRange      = InputRange{Min: 1, Max: 100000}
)

// ClampToInputRanges pins each numeric field into its input range. Percentiles
// and the growth model are left for Validate to judge.
func ClampToInputRanges(p domain.SimulationParameters) domain.SimulationParameters {
	c := p.Clone()
	c.InitialPrice = PriceRange.clamp(c.InitialPrice)
	c.InitialShares = InitialSharesRange.clamp(c.InitialShares)
	c.AnnualShares = AnnualSharesRange.clamp(c.AnnualShares)
	c.BaseGrowthRate = GrowthRateRange.clamp(c.BaseGrowthRate)
	c.AnnualVolatility = VolatilityRange.clamp(c.AnnualVolatility)
	c.GrowthDecay = GrowthDecayRange.clamp(c.GrowthDecay)
	c.GrowthFloor = GrowthFloorRange.clamp(c.GrowthFloor)
	c.NumPaths = int(NumPathsRange.clamp(float64(c.NumPaths)))
	return c
}
