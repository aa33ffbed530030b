package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rpgo/share-projector/internal/domain"
)

// ConsoleFormatter renders the projection as an aligned text table.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	if report == nil || report.Table == nil {
		return nil, fmt.Errorf("no projection table to format")
	}
	t := report.Table

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "MONTE CARLO SHARE PROJECTION")
	fmt.Fprintln(&buf, "================================")
	for _, a := range GenerateAssumptions(t.Parameters) {
		fmt.Fprintf(&buf, "  • %s\n", a)
	}
	fmt.Fprintln(&buf)

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"Plan Year", "Total Shares", "Median Price"}
	for _, p := range t.Percentiles() {
		header = append(header, PercentileLabel(p)+" Percentile")
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for _, row := range t.Rows {
		cells := []string{
			intToString(report.CalendarYear(row.Horizon)),
			FormatShares(row.TotalShares),
			medianPriceCell(t, row),
		}
		for _, pv := range row.Values {
			cells = append(cells, FormatCurrency(pv.Value))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	s := SummarizeProjection(report)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "By %d (%d years): %s shares", s.FinalYear, s.FinalHorizon, FormatShares(s.TotalShares))
	if s.HasMedian {
		fmt.Fprintf(&buf, ", median value %s", FormatCurrency(s.Median))
	}
	fmt.Fprintf(&buf, ", range %s – %s (%s to %s percentile)\n",
		FormatCurrency(s.Low.Value), FormatCurrency(s.High.Value), PercentileLabel(s.Low.Percentile), PercentileLabel(s.High.Percentile))
	if s.HasPriceCAGR {
		fmt.Fprintf(&buf, "Median price growth: %s per year\n", FormatPercentage(s.MedianPriceCAGR))
	}
	return buf.Bytes(), nil
}

// medianPriceCell shows the initial price on the baseline row and the derived
// median price elsewhere.
func medianPriceCell(t *domain.ProjectionTable, row domain.YearRow) string {
	if row.Horizon == 0 {
		return FormatCurrency(t.Parameters.InitialPrice)
	}
	if median, ok := row.Value(0.50); ok {
		return FormatPerShare(median, row.TotalShares)
	}
	return "-"
}
