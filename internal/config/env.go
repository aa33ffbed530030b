package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rpgo/share-projector/internal/domain"
)

// Settings are process-level options read from the environment. Command-line
// flags take precedence over them.
type Settings struct {
	LogLevel     string `env:"PROJECTOR_LOG_LEVEL"     envDefault:"info"`
	Addr         string `env:"PROJECTOR_ADDR"          envDefault:":8080"`
	Workers      int    `env:"PROJECTOR_WORKERS"`
	Seed         int64  `env:"PROJECTOR_SEED"`
	BaselineYear int    `env:"PROJECTOR_BASELINE_YEAR"`
}

// LoadSettings parses Settings from the process environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// LoadSettingsFrom parses Settings from an explicit variable map.
func LoadSettingsFrom(vars map[string]string) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: vars}); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// Apply overlays non-zero settings onto a parameter-file configuration.
func (s Settings) Apply(cfg *domain.Configuration) {
	if s.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = s.Workers
	}
	if s.Seed != 0 && cfg.Seed == 0 {
		cfg.Seed = s.Seed
	}
	if s.BaselineYear > 0 && cfg.BaselineYear == 0 {
		cfg.BaselineYear = s.BaselineYear
	}
}
