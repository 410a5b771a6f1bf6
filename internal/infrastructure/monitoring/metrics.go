// Package monitoring exposes the Prometheus metrics for the purge pipeline.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics manages the Prometheus metrics.
type Metrics struct {
	PurgeRequests *prometheus.CounterVec
	PurgeLatency  *prometheus.HistogramVec
	DebouncedURLs prometheus.Counter
}

// NewMetrics creates and registers the Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		PurgeRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cdnflush_purge_requests_total",
				Help: "Total number of provider purge requests.",
			},
			[]string{"provider_kind", "result"},
		),
		PurgeLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cdnflush_purge_latency_seconds",
				Help:    "Latency of provider purge requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider_kind"},
		),
		DebouncedURLs: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "cdnflush_debounced_urls_total",
				Help: "Total number of urls suppressed by the debounce window.",
			},
		),
	}
}

// RecordPurge records metrics for one provider purge.
func (m *Metrics) RecordPurge(providerKind string, success bool, duration time.Duration) {
	result := "failure"
	if success {
		result = "success"
	}
	m.PurgeRequests.WithLabelValues(providerKind, result).Inc()
	m.PurgeLatency.WithLabelValues(providerKind).Observe(duration.Seconds())
}

// RecordDebounced adds n suppressed urls to the debounce counter.
func (m *Metrics) RecordDebounced(n int) {
	if n > 0 {
		m.DebouncedURLs.Add(float64(n))
	}
}
