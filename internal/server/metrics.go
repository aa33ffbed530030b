package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcome labels for projections_total.
const (
	outcomeOK       = "ok"
	outcomeInvalid  = "invalid"
	outcomeCanceled = "canceled"
	outcomeError    = "error"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	projections *prometheus.CounterVec
	duration    prometheus.Histogram
	paths       prometheus.Counter
}

// NewMetrics registers the projector collectors on a private registry, plus the
// standard Go and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		projections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "projector",
			Name:      "projections_total",
			Help:      "Projection requests by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "projector",
			Name:      "projection_duration_seconds",
			Help:      "Wall time spent building a projection table.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		paths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "projector",
			Name:      "simulated_paths_total",
			Help:      "Price paths simulated across all horizons.",
		}),
	}
	reg.MustRegister(
		m.projections,
		m.duration,
		m.paths,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) observe(outcome string, elapsed time.Duration, paths int) {
	m.projections.WithLabelValues(outcome).Inc()
	if outcome == outcomeOK {
		m.duration.Observe(elapsed.Seconds())
		m.paths.Add(float64(paths))
	}
}
