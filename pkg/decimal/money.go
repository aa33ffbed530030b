package decimal

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the ISO code used when none is given.
const DefaultCurrency = money.USD

// maxDisplayable bounds amounts that still fit go-money's int64 minor units.
var maxDisplayable = decimal.NewFromInt(1_000_000_000_000_000)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
	Currency string
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{Decimal: decimal.NewFromFloat(value), Currency: DefaultCurrency}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{Decimal: d, Currency: DefaultCurrency}
}

// DivQuantity divides the amount by a share count.
func (m Money) DivQuantity(q decimal.Decimal) Money {
	return Money{Decimal: m.Decimal.Div(q), Currency: m.Currency}
}

// String returns the amount fixed to two decimals, without symbol.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Display renders the amount with currency symbol and grouping, e.g. "$1,234.56".
// Amounts too large for minor-unit integers fall back to Compact.
func (m Money) Display() string {
	if m.Decimal.Abs().GreaterThanOrEqual(maxDisplayable) {
		return m.symbol() + Compact(m.Decimal.InexactFloat64(), 3)
	}
	code := m.Currency
	if code == "" {
		code = DefaultCurrency
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		return m.String() + " " + code
	}
	minor := m.Decimal.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}

func (m Money) symbol() string {
	code := m.Currency
	if code == "" {
		code = DefaultCurrency
	}
	if cur := money.GetCurrency(code); cur != nil {
		return cur.Grapheme
	}
	return ""
}

var compactUnits = []struct {
	value  float64
	symbol string
}{
	{1e15, "Q"},
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
}

// Compact formats a number with a magnitude suffix (k, M, B, T, Q) and at most
// digits fraction digits, trailing zeros trimmed: 1234567 -> "1.235M".
func Compact(num float64, digits int) string {
	if math.IsNaN(num) {
		return "NaN"
	}
	if math.IsInf(num, 0) {
		if num < 0 {
			return "-Inf"
		}
		return "Inf"
	}

	sign := ""
	if num < 0 {
		sign = "-"
		num = -num
	}
	for _, u := range compactUnits {
		if num >= u.value {
			return sign + trimZeros(decimal.NewFromFloat(num/u.value).StringFixed(int32(digits))) + u.symbol
		}
	}
	return sign + trimZeros(decimal.NewFromFloat(num).StringFixed(int32(digits)))
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
