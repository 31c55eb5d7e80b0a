package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the diff module.
type Metrics struct {
	// Diff outcomes by severity
	DiffOutcome *prometheus.CounterVec

	// Overall diff latency
	DiffLatency prometheus.Histogram

	// Cache hits and misses for memoized diffs
	CacheLookups *prometheus.CounterVec

	// Sequence algorithm chosen per diff
	AlgorithmChosen *prometheus.CounterVec
}

// New creates a new Metrics instance with all diff module metrics registered.
func New() *Metrics {
	return &Metrics{
		DiffOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lexdiff_diff_outcomes_total",
			Help: "Total statute diffs computed, by impact severity",
		}, []string{"severity"}),

		DiffLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lexdiff_diff_duration_seconds",
			Help:    "Duration of full semantic diff computation",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),

		CacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lexdiff_diff_cache_lookups_total",
			Help: "Diff cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss"

		AlgorithmChosen: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lexdiff_diff_algorithm_total",
			Help: "Sequence algorithm selected per diff",
		}, []string{"algorithm"}),
	}
}

// ObserveDiffLatency records the duration of one diff invocation.
func (m *Metrics) ObserveDiffLatency(d time.Duration) {
	if m != nil {
		m.DiffLatency.Observe(d.Seconds())
	}
}

// IncrementOutcome records a completed diff by severity.
func (m *Metrics) IncrementOutcome(severity string) {
	if m != nil {
		m.DiffOutcome.WithLabelValues(severity).Inc()
	}
}

// IncrementCacheLookup records a cache hit or miss.
func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}

// IncrementAlgorithm records which sequence algorithm served a diff.
func (m *Metrics) IncrementAlgorithm(algorithm string) {
	if m != nil {
		m.AlgorithmChosen.WithLabelValues(algorithm).Inc()
	}
}
