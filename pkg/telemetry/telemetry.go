// Package telemetry provides OpenTelemetry tracing for snapshot
// reconciliation.
//
// Like metrics, tracing is layered above the core: the source layer wraps
// each apply in a span carrying the reconciliation outcome.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/shelf-ui/shelf/pkg/reconcile"
)

// Default tracer name for shelf applications.
const defaultTracerName = "shelf"

// Config configures the reconcile tracer.
type Config struct {
	// TracerName is the name of the tracer (default: "shelf").
	TracerName string

	// ContainerName labels spans with the logical container being
	// reconciled (e.g. "library").
	ContainerName string

	tracer trace.Tracer
}

// Option configures the reconcile tracer.
type Option func(*Config)

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithContainerName sets the container label added to every span.
func WithContainerName(name string) Option {
	return func(c *Config) {
		c.ContainerName = name
	}
}

// Tracer traces reconciliation runs.
type Tracer struct {
	cfg Config
}

// NewTracer creates a Tracer resolving against the global otel provider.
func NewTracer(opts ...Option) *Tracer {
	cfg := Config{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.tracer = otel.Tracer(cfg.TracerName)
	return &Tracer{cfg: cfg}
}

// Reconcile runs fn inside a "shelf.reconcile" span and annotates it with
// the snapshot size and the resulting stats. A nil Tracer runs fn directly.
func (t *Tracer) Reconcile(ctx context.Context, snapshotLen int, fn func(context.Context) reconcile.Stats) reconcile.Stats {
	if t == nil {
		return fn(ctx)
	}

	ctx, span := t.cfg.tracer.Start(ctx, "shelf.reconcile",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Int("shelf.snapshot.size", snapshotLen)),
	)
	defer span.End()

	if t.cfg.ContainerName != "" {
		span.SetAttributes(attribute.String("shelf.container", t.cfg.ContainerName))
	}

	stats := fn(ctx)
	span.SetAttributes(
		attribute.Int("shelf.items.inserted", stats.Inserted),
		attribute.Int("shelf.items.removed", stats.Removed),
		attribute.Int("shelf.items.updated", stats.Updated),
	)
	return stats
}
