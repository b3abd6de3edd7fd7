package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
)

// Metrics holds the fetch instrumentation for one dashboard.
type Metrics struct {
	FetchTotal           *prometheus.CounterVec
	FetchDurationSeconds *prometheus.HistogramVec
	FetchSkippedTotal    *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates a Metrics instance on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		FetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "canarywatch_fetch_total",
				Help: "Total number of API fetches by resource and outcome",
			},
			[]string{"resource", "outcome"},
		),
		FetchDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "canarywatch_fetch_duration_seconds",
				Help:    "API fetch duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"resource"},
		),
		FetchSkippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "canarywatch_fetch_skipped_total",
				Help: "Scheduled fetches skipped because the previous one was still in flight",
			},
			[]string{"resource"},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.FetchTotal,
		m.FetchDurationSeconds,
		m.FetchSkippedTotal,
	)

	return m
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFetch records one completed fetch. An empty kind means success;
// otherwise kind is the failure class and becomes the outcome label.
func (m *Metrics) ObserveFetch(resource, kind string, elapsed time.Duration) {
	outcome := kind
	if outcome == "" {
		outcome = OutcomeSuccess
	}
	m.FetchTotal.WithLabelValues(resource, outcome).Inc()
	m.FetchDurationSeconds.WithLabelValues(resource).Observe(elapsed.Seconds())
}

// ObserveSkip records a fetch that was not started.
func (m *Metrics) ObserveSkip(resource string) {
	m.FetchSkippedTotal.WithLabelValues(resource).Inc()
}
