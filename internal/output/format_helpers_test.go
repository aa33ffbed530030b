//go:build unit

package output

import (
	"math"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	cases := map[float64]string{
		1234.567: "$1,234.57",
		0:        "$0.00",
		-2500.5:  "-$2,500.50",
	}
	for in, want := range cases {
		if got := FormatCurrency(in); got != want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatCurrencyNonFinite(t *testing.T) {
	if got := FormatCurrency(math.Inf(1)); got == "" {
		t.Errorf("expected a rendering for +Inf")
	}
}

func TestFormatPercentage(t *testing.T) {
	if got, want := FormatPercentage(0.123456), "12.35%"; got != want {
		t.Errorf("FormatPercentage = %q, want %q", got, want)
	}
}

func TestFormatCompactCurrency(t *testing.T) {
	if got, want := FormatCompactCurrency(1500000, 1), "$1.5M"; got != want {
		t.Errorf("FormatCompactCurrency = %q, want %q", got, want)
	}
}

func TestPercentileLabel(t *testing.T) {
	cases := map[float64]string{0.1: "10th", 0.5: "50th", 0.01: "1st", 0.02: "2nd", 0.03: "3rd", 0.11: "11th", 0.025: "2.5th"}
	for in, want := range cases {
		if got := PercentileLabel(in); got != want {
			t.Errorf("PercentileLabel(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPercentileKey(t *testing.T) {
	if got := percentileKey(0.9); got != "p90" {
		t.Errorf("percentileKey(0.9) = %q", got)
	}
	if got := percentileKey(0.025); got != "p2_5" {
		t.Errorf("percentileKey(0.025) = %q", got)
	}
}

func TestIntToString(t *testing.T) {
	if got, want := intToString(42), "42"; got != want {
		t.Errorf("intToString(42) = %q, want %q", got, want)
	}
}

func TestFixed2(t *testing.T) {
	if got := fixed2(5500); got != "5500.00" {
		t.Errorf("fixed2(5500) = %q", got)
	}
	if got := fixed2(math.NaN()); got != "NaN" {
		t.Errorf("fixed2(NaN) = %q", got)
	}
}

func TestFormatPerShare(t *testing.T) {
	if got, want := FormatPerShare(13310, 110), "$121.00"; got != want {
		t.Errorf("FormatPerShare = %q, want %q", got, want)
	}
	if got := FormatPerShare(500, 0); got != "-" {
		t.Errorf("FormatPerShare with zero shares = %q", got)
	}
}
