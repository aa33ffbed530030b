package output_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpgo/share-projector/internal/domain"
	"github.com/rpgo/share-projector/internal/output"
)

func sampleReport() *domain.ProjectionReport {
	params := domain.DefaultParameters()
	return &domain.ProjectionReport{
		BaselineYear: 2023,
		GeneratedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Table: &domain.ProjectionTable{
			Parameters: params,
			Rows: []domain.YearRow{
				{Horizon: 0, TotalShares: 0, Values: []domain.PercentileValue{{Percentile: 0.1, Value: 0}, {Percentile: 0.5, Value: 0}, {Percentile: 0.9, Value: 0}}},
				{Horizon: 1, TotalShares: 50, Values: []domain.PercentileValue{{Percentile: 0.1, Value: 4800}, {Percentile: 0.5, Value: 5500}, {Percentile: 0.9, Value: 6200}}},
			},
		},
	}
}

func TestGenerateReportWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	path, err := output.GenerateReport(sampleReport(), "json", dir)
	if err != nil {
		t.Fatalf("GenerateReport error: %v", err)
	}
	if !strings.HasSuffix(path, ".json") {
		t.Fatalf("unexpected path %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report not written: %v", err)
	}
}

func TestGenerateReportUnsupportedFormat(t *testing.T) {
	_, err := output.GenerateReport(sampleReport(), "pdf", t.TempDir())
	if !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "console") {
		t.Fatalf("expected available formats in error: %v", err)
	}
}

func TestRenderToWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := output.Render(&buf, sampleReport(), "csv"); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.Contains(buf.String(), "1,2024,50,110.00,4800.00,5500.00,6200.00") {
		t.Fatalf("unexpected csv:\n%s", buf.String())
	}
}
