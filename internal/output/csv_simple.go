package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rpgo/share-projector/internal/domain"
)

// CSVFormatter implements the machine-readable table (one row per horizon).
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	if report == nil || report.Table == nil {
		return nil, fmt.Errorf("no projection table to format")
	}
	t := report.Table

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Horizon", "PlanYear", "TotalShares", "MedianPrice"}
	for _, p := range t.Percentiles() {
		header = append(header, percentileKey(p))
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range t.Rows {
		median := ""
		if row.Horizon == 0 {
			median = fixed2(t.Parameters.InitialPrice)
		} else if price, ok := row.MedianPrice(); ok {
			median = fixed2(price)
		}
		record := []string{
			intToString(row.Horizon),
			intToString(report.CalendarYear(row.Horizon)),
			FormatShares(row.TotalShares),
			median,
		}
		for _, pv := range row.Values {
			record = append(record, fixed2(pv.Value))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
