package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpgo/share-projector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "parameters:\n" +
		"  initial_price: 120.5\n" +
		"  initial_shares: 10\n" +
		"  annual_shares: 40\n" +
		"  base_growth_rate: 0.08\n" +
		"  growth_decay: 0.05\n" +
		"  growth_floor: 0.03\n" +
		"  annual_volatility: 0.2\n" +
		"  num_paths: 5000\n" +
		"  percentiles: [0.2, 0.5, 0.8]\n" +
		"  growth_model: lognormal\n" +
		"max_horizon: 25\n" +
		"baseline_year: 2024\n" +
		"seed: 99\n"

	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))

	parser := NewInputParser()
	config, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	p := config.Parameters
	assert.Equal(t, 120.5, p.InitialPrice)
	assert.Equal(t, 10.0, p.InitialShares)
	assert.Equal(t, 40.0, p.AnnualShares)
	assert.Equal(t, 0.08, p.BaseGrowthRate)
	assert.Equal(t, 0.05, p.GrowthDecay)
	assert.Equal(t, 0.03, p.GrowthFloor)
	assert.Equal(t, 0.2, p.AnnualVolatility)
	assert.Equal(t, 5000, p.NumPaths)
	assert.Equal(t, []float64{0.2, 0.5, 0.8}, p.Percentiles)
	assert.Equal(t, domain.GrowthModelLognormal, p.GrowthModel)
	assert.Equal(t, 25, config.MaxHorizon)
	assert.Equal(t, 2024, config.BaselineYear)
	assert.Equal(t, int64(99), config.Seed)
}

func TestLoadFromFile_DefaultsFillGaps(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.Parse([]byte("parameters:\n  initial_shares: 3\n"))
	require.NoError(t, err)

	want := domain.DefaultParameters()
	want.InitialShares = 3
	assert.Equal(t, want, config.Parameters)
	assert.Equal(t, domain.DefaultMaxHorizon, config.MaxHorizon)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.Parse([]byte("parameters:\n\tinitial_price: [oops\n"))

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateConfiguration(t *testing.T) {
	parser := NewInputParser()

	valid := parser.CreateExampleConfiguration()
	assert.NoError(t, parser.ValidateConfiguration(valid))

	badParams := parser.CreateExampleConfiguration()
	badParams.Parameters.NumPaths = 0
	err := parser.ValidateConfiguration(badParams)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidParameter))

	defaultHorizon := parser.CreateExampleConfiguration()
	defaultHorizon.MaxHorizon = 0
	assert.NoError(t, parser.ValidateConfiguration(defaultHorizon))

	tests := []struct {
		name   string
		mutate func(c *domain.Configuration)
		want   string
	}{
		{"horizon too large", func(c *domain.Configuration) { c.MaxHorizon = 500 }, "max horizon must be between 0 (default 30) and 100"},
		{"negative horizon", func(c *domain.Configuration) { c.MaxHorizon = -1 }, "max horizon"},
		{"negative baseline year", func(c *domain.Configuration) { c.BaselineYear = -5 }, "baseline year"},
		{"negative workers", func(c *domain.Configuration) { c.Workers = -2 }, "workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := parser.CreateExampleConfiguration()
			tt.mutate(cfg)
			err := parser.ValidateConfiguration(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidParameter)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestSaveConfiguration_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	example := parser.CreateExampleConfiguration()

	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, SaveConfiguration(example, path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, example, loaded)
}

func TestEffectiveBaselineYear(t *testing.T) {
	orig := nowFunc
	defer func() { nowFunc = orig }()
	nowFunc = func() time.Time { return time.Date(2031, 3, 1, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, 2031, EffectiveBaselineYear(&domain.Configuration{}))
	assert.Equal(t, 2023, EffectiveBaselineYear(&domain.Configuration{BaselineYear: 2023}))
}
