package domain

// Configuration is the top-level structure of a projection parameter file.
type Configuration struct {
	Parameters SimulationParameters `yaml:"parameters" json:"parameters"`

	// MaxHorizon is the last projected year; horizons 1..MaxHorizon are simulated.
	MaxHorizon int `yaml:"max_horizon,omitempty" json:"max_horizon,omitempty"`
	// BaselineYear is the calendar year of horizon 0. Zero means the current year.
	BaselineYear int `yaml:"baseline_year,omitempty" json:"baseline_year,omitempty"`
	// Seed fixes the random stream for reproducible tables. Zero draws a fresh seed.
	Seed int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
	// Workers bounds path-level parallelism. Zero uses GOMAXPROCS.
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty"`
}

// Horizons returns 1..MaxHorizon, defaulting to DefaultMaxHorizon.
func (c *Configuration) Horizons() []int {
	n := c.MaxHorizon
	if n <= 0 {
		n = DefaultMaxHorizon
	}
	return HorizonRange(n)
}

// HorizonRange returns the ordered horizons 1..n.
func HorizonRange(n int) []int {
	horizons := make([]int, 0, n)
	for h := 1; h <= n; h++ {
		horizons = append(horizons, h)
	}
	return horizons
}
