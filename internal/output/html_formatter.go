package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/rpgo/share-projector/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with a Chart.js fan chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"compact": func(v float64) string { return FormatCompactCurrency(v, 2) },
	"pct":     FormatPercentage,
	"shares":  FormatShares,
	"label":   PercentileLabel,
	"json": func(v interface{}) (template.JS, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("encode chart data: %w", err)
		}
		return template.JS(b), nil
	},
}).Parse(htmlTemplateSource))

type htmlRow struct {
	Year        int
	TotalShares float64
	MedianPrice string
	Values      []string
}

// chartSeries holds one percentile line; non-finite points are nil so they
// encode as JSON null gaps.
type chartSeries struct {
	Label string     `json:"label"`
	Data  []*float64 `json:"data"`
}

func chartPoint(v float64) *float64 {
	if !isFinite(v) {
		return nil
	}
	return &v
}

func (h HTMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	if report == nil || report.Table == nil {
		return nil, fmt.Errorf("no projection table to format")
	}
	t := report.Table
	pcts := t.Percentiles()

	rows := make([]htmlRow, 0, len(t.Rows))
	years := make([]int, 0, len(t.Rows))
	series := make([]chartSeries, len(pcts))
	for i, p := range pcts {
		series[i] = chartSeries{Label: PercentileLabel(p) + " percentile", Data: make([]*float64, 0, len(t.Rows))}
	}
	for _, row := range t.Rows {
		year := report.CalendarYear(row.Horizon)
		r := htmlRow{Year: year, TotalShares: row.TotalShares, MedianPrice: medianPriceCell(t, row)}
		for i, pv := range row.Values {
			r.Values = append(r.Values, FormatCurrency(pv.Value))
			if i < len(series) {
				series[i].Data = append(series[i].Data, chartPoint(pv.Value))
			}
		}
		rows = append(rows, r)
		years = append(years, year)
	}

	data := struct {
		Report      *domain.ProjectionReport
		Percentiles []float64
		Rows        []htmlRow
		Assumptions []string
		Summary     ProjectionSummary
		Years       []int
		Series      []chartSeries
	}{report, pcts, rows, GenerateAssumptions(t.Parameters), SummarizeProjection(report), years, series}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
