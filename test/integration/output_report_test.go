package integration

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/share-projector/internal/calculation"
	"github.com/rpgo/share-projector/internal/domain"
	"github.com/rpgo/share-projector/internal/output"
)

func TestOutputGeneration(t *testing.T) {
	cfg := loadExample(t)

	table, err := calculation.NewProjectionBuilder(cfg.Seed, cfg.Workers).Build(context.Background(), cfg.Parameters, cfg.Horizons())
	require.NoError(t, err)
	report := &domain.ProjectionReport{Table: table, BaselineYear: cfg.BaselineYear, GeneratedAt: time.Now()}

	// each format must reach the final horizon
	finalMarker := map[string]string{
		"console": "2033",
		"csv":     "10,2033,",
		"html":    "2033",
		"json":    `"horizon": 10`,
	}
	dir := t.TempDir()
	for _, format := range output.AvailableFormatterNames() {
		path, err := output.GenerateReport(report, format, filepath.Join(dir, format))
		require.NoError(t, err, format)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), finalMarker[format], format)
	}
}

func TestConsoleOutputListsEveryPlanYear(t *testing.T) {
	cfg := loadExample(t)

	table, err := calculation.NewProjectionBuilder(cfg.Seed, cfg.Workers).Build(context.Background(), cfg.Parameters, cfg.Horizons())
	require.NoError(t, err)
	report := &domain.ProjectionReport{Table: table, BaselineYear: cfg.BaselineYear}

	var sb strings.Builder
	require.NoError(t, output.Render(&sb, report, "table"))
	for year := 2023; year <= 2033; year++ {
		assert.Contains(t, sb.String(), strconv.Itoa(year))
	}
}
