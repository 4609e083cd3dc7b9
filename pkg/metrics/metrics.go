// Package metrics exposes elastic buffer reallocations as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "elastic"

// Metrics holds the collectors fed by buffer events. It is safe to share between buffers.
type Metrics struct {
	Reallocations      *prometheus.CounterVec
	ReallocateFailures prometheus.Counter
	AllocationBytes    prometheus.Histogram
	ReleasedBytes      prometheus.Counter
}

// New creates the collectors and registers them with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Reallocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reallocations_total",
				Help:      "Total number of backing allocation changes",
			},
			[]string{"direction"},
		),
		ReallocateFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reallocation_failures_total",
				Help:      "Total number of failed reallocations",
			},
		),
		AllocationBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "allocation_bytes",
				Help:      "Size of backing allocations after each reallocation",
				Buckets:   prometheus.ExponentialBuckets(64, 4, 12),
			},
		),
		ReleasedBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "released_bytes_total",
				Help:      "Total number of bytes released back to allocators",
			},
		),
	}
}

func (m *Metrics) Reallocated(from int, to int) {
	direction := "grow"
	if to < from {
		direction = "shrink"
	}
	m.Reallocations.WithLabelValues(direction).Inc()
	m.AllocationBytes.Observe(float64(to))
}

func (m *Metrics) ReallocateFailed(_ int, _ int, _ error) {
	m.ReallocateFailures.Inc()
}

func (m *Metrics) Released(size int) {
	m.Reallocations.WithLabelValues("release").Inc()
	m.ReleasedBytes.Add(float64(size))
}
