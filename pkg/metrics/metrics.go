// Package metrics exposes Prometheus collectors for generation outcomes.
// Collectors register on the default registry; the hosting node is expected
// to serve /metrics itself.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storygen"

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	// GenerationTotal counts generation attempts by outcome.
	GenerationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_total",
			Help:      "Total number of story generation attempts",
		},
		[]string{"mode", "provider", "status"},
	)

	// GenerationDuration tracks wall-clock generation time per backend.
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Story generation duration in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"mode", "provider"},
	)

	// LoaderLoadsTotal counts loader load attempts by outcome.
	LoaderLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loader_loads_total",
			Help:      "Total number of generator load attempts",
		},
		[]string{"status"},
	)
)

// ObserveGeneration records one generation attempt. The duration is recorded
// for failures too, so slow errors stay visible.
func ObserveGeneration(mode, provider, status string, seconds float64) {
	GenerationTotal.WithLabelValues(mode, provider, status).Inc()
	GenerationDuration.WithLabelValues(mode, provider).Observe(seconds)
}

// RecordLoad records one loader load attempt.
func RecordLoad(status string) {
	LoaderLoadsTotal.WithLabelValues(status).Inc()
}
