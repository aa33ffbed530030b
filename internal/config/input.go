package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rpgo/share-projector/internal/domain"
	"gopkg.in/yaml.v3"
)

// maxSupportedHorizon bounds max_horizon in parameter files.
const maxSupportedHorizon = 100

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// InputParser handles parsing of projection parameter files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML (or JSON) file. Fields absent
// from the file keep the values of DefaultConfiguration.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates configuration bytes.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	config := DefaultConfiguration()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := config.Parameters.Validate(); err != nil {
		return fmt.Errorf("parameters: %w", err)
	}
	if config.MaxHorizon < 0 || config.MaxHorizon > maxSupportedHorizon {
		return fmt.Errorf("%w: max horizon must be between 0 (default %d) and %d, got %d",
			domain.ErrInvalidParameter, domain.DefaultMaxHorizon, maxSupportedHorizon, config.MaxHorizon)
	}
	if config.BaselineYear < 0 {
		return fmt.Errorf("%w: baseline year cannot be negative, got %d", domain.ErrInvalidParameter, config.BaselineYear)
	}
	if config.Workers < 0 {
		return fmt.Errorf("%w: workers cannot be negative, got %d", domain.ErrInvalidParameter, config.Workers)
	}
	return nil
}

// DefaultConfiguration returns the configuration used when no file is given.
func DefaultConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Parameters: domain.DefaultParameters(),
		MaxHorizon: domain.DefaultMaxHorizon,
	}
}

// EffectiveBaselineYear returns the configured baseline year, or the current year.
func EffectiveBaselineYear(config *domain.Configuration) int {
	if config.BaselineYear > 0 {
		return config.BaselineYear
	}
	return nowFunc().Year()
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Parameters: domain.SimulationParameters{
			InitialPrice:     100,
			InitialShares:    0,
			AnnualShares:     50,
			BaseGrowthRate:   0.10,
			GrowthDecay:      0.05,
			GrowthFloor:      0.04,
			AnnualVolatility: 0.10,
			NumPaths:         10000,
			Percentiles:      []float64{0.10, 0.50, 0.90},
			GrowthModel:      domain.GrowthModelAdditive,
		},
		MaxHorizon:   domain.DefaultMaxHorizon,
		BaselineYear: 2023,
	}
}

// SaveConfiguration writes config as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return os.WriteFile(filename, b, 0644)
}
