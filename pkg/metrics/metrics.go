package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the toolkit
type Metrics struct {
	// Client cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Permission simulation metrics
	SimulationCallsTotal     *prometheus.CounterVec
	SimulationDecisionsTotal *prometheus.CounterVec
	SimulationDuration       *prometheus.HistogramVec
}

// Config holds configuration for metrics
type Config struct {
	// Namespace for metrics (default: "permproof")
	Namespace string

	// Registry to use (default: prometheus.DefaultRegisterer)
	Registry prometheus.Registerer
}

// DefaultConfig returns default metrics configuration
func DefaultConfig() Config {
	return Config{
		Namespace: "permproof",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(config Config) *Metrics {
	if config.Namespace == "" {
		config.Namespace = "permproof"
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: config.Namespace,
				Name:      "client_cache_hits_total",
				Help:      "Number of service client cache hits",
			},
			[]string{"service"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: config.Namespace,
				Name:      "client_cache_misses_total",
				Help:      "Number of service client cache misses",
			},
			[]string{"service"},
		),
		SimulationCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: config.Namespace,
				Name:      "simulation_calls_total",
				Help:      "Number of permission simulation calls by status",
			},
			[]string{"status"},
		),
		SimulationDecisionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: config.Namespace,
				Name:      "simulation_decisions_total",
				Help:      "Number of simulation results by decision",
			},
			[]string{"decision"},
		),
		SimulationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: config.Namespace,
				Name:      "simulation_duration_seconds",
				Help:      "Duration of permission simulation calls",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"status"},
		),
	}
}

// RecordCacheHit records a client cache hit
func (m *Metrics) RecordCacheHit(service string) {
	m.CacheHitsTotal.WithLabelValues(service).Inc()
}

// RecordCacheMiss records a client cache miss
func (m *Metrics) RecordCacheMiss(service string) {
	m.CacheMissesTotal.WithLabelValues(service).Inc()
}

// RecordSimulation records a simulation call with its outcome and duration
func (m *Metrics) RecordSimulation(status string, duration time.Duration) {
	m.SimulationCallsTotal.WithLabelValues(status).Inc()
	m.SimulationDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordDecision records a single simulation decision
func (m *Metrics) RecordDecision(decision string) {
	m.SimulationDecisionsTotal.WithLabelValues(decision).Inc()
}
