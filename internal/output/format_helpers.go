package output

import (
	"strconv"
	"strings"

	"github.com/rpgo/share-projector/pkg/decimal"
	stddec "github.com/shopspring/decimal"
)

var decimalHundred = stddec.NewFromInt(100)

// FormatCurrency formats an amount as grouped USD with 2 decimals, e.g. "$5,500.00".
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount float64) string {
	if !isFinite(amount) {
		return decimal.Compact(amount, 3)
	}
	return decimal.NewMoney(amount).Display()
}

// FormatPerShare divides a portfolio value by a share count and formats the
// per-share price.
func FormatPerShare(value, shares float64) string {
	if shares == 0 || !isFinite(value) {
		return "-"
	}
	return decimal.NewMoneyFromDecimal(stddec.NewFromFloat(value)).DivQuantity(stddec.NewFromFloat(shares)).Display()
}

// FormatCompactCurrency formats an amount for chart axes and tooltips, e.g. "$1.5M".
func FormatCompactCurrency(amount float64, digits int) string {
	return "$" + decimal.Compact(amount, digits)
}

// FormatPercentage formats a fraction as a percentage with 2 decimals (0.1234 -> "12.34%").
func FormatPercentage(fraction float64) string {
	return stddec.NewFromFloat(fraction).Mul(decimalHundred).StringFixed(2) + "%"
}

// FormatShares renders a share count without trailing zeros.
func FormatShares(shares float64) string {
	return stddec.NewFromFloat(shares).String()
}

// PercentileLabel renders 0.1 as "10th", 0.5 as "50th", 0.025 as "2.5th".
func PercentileLabel(p float64) string {
	pct := stddec.NewFromFloat(p).Mul(decimalHundred)
	s := pct.String()
	if !pct.IsInteger() {
		return s + "th"
	}
	n := pct.IntPart()
	switch {
	case n%100 >= 11 && n%100 <= 13:
		return s + "th"
	case n%10 == 1:
		return s + "st"
	case n%10 == 2:
		return s + "nd"
	case n%10 == 3:
		return s + "rd"
	}
	return s + "th"
}

// percentileKey renders 0.1 as "p10" for machine-readable headers.
func percentileKey(p float64) string {
	s := stddec.NewFromFloat(p).Mul(decimalHundred).String()
	return "p" + strings.ReplaceAll(s, ".", "_")
}

func intToString(i int) string { return strconv.Itoa(i) }

// fixed2 renders a raw value with two decimals for machine-readable outputs.
func fixed2(v float64) string {
	if !isFinite(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return decimal.NewMoney(v).String()
}
