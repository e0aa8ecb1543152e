// Package metrics exposes Prometheus instrumentation for snapshot
// reconciliation.
//
// The core packages carry no instrumentation of their own; the snapshot
// source layer records the Stats each Reconcile returns through a Recorder.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shelf-ui/shelf/pkg/reconcile"
)

// Config configures the reconcile metrics.
type Config struct {
	// Namespace is the metrics namespace (default: "shelf").
	Namespace string

	// Subsystem is the metrics subsystem (default: "reconcile").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for reconcile duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Option configures the reconcile metrics.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "shelf",
		Subsystem: "reconcile",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Recorder records reconciliation outcomes.
type Recorder struct {
	itemsTotal *prometheus.CounterVec
	runsTotal  prometheus.Counter
	duration   prometheus.Histogram
	snapshots  prometheus.Counter
	stale      prometheus.Counter
}

// NewRecorder creates and registers the reconcile metrics.
func NewRecorder(opts ...Option) *Recorder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Recorder{
		itemsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "items_total",
			Help:        "Items inserted, removed, and updated by reconciliation",
			ConstLabels: cfg.ConstLabels,
		}, []string{"op"}),

		runsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "runs_total",
			Help:        "Completed reconciliation runs",
			ConstLabels: cfg.ConstLabels,
		}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "duration_seconds",
			Help:        "Reconciliation duration in seconds",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}),

		snapshots: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "snapshots_total",
			Help:        "Snapshots delivered to the applier",
			ConstLabels: cfg.ConstLabels,
		}),

		stale: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "snapshots_stale_total",
			Help:        "Snapshots superseded before they were applied",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// ObserveRun records one completed reconciliation.
func (r *Recorder) ObserveRun(stats reconcile.Stats, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.itemsTotal.WithLabelValues("insert").Add(float64(stats.Inserted))
	r.itemsTotal.WithLabelValues("remove").Add(float64(stats.Removed))
	r.itemsTotal.WithLabelValues("update").Add(float64(stats.Updated))
	r.runsTotal.Inc()
	r.duration.Observe(elapsed.Seconds())
}

// ObserveSnapshot records a snapshot handed to the applier.
func (r *Recorder) ObserveSnapshot() {
	if r == nil {
		return
	}
	r.snapshots.Inc()
}

// ObserveStale records a snapshot dropped because a newer one arrived
// before it was applied.
func (r *Recorder) ObserveStale() {
	if r == nil {
		return
	}
	r.stale.Inc()
}
