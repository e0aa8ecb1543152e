// Package source feeds externally fetched snapshots into reconciliation.
//
// The list engine and reconciler are not reentrant-safe, so every snapshot
// for a given container must be applied from one goroutine. Applier owns
// that serialization: producers (Poller, Feed, or anything else) hand
// snapshots to Offer from any goroutine, and Run applies them one at a time.
// Delivery is latest-wins: a snapshot superseded before it was applied is
// silently dropped, which at worst makes a stale snapshot briefly visible.
package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/shelf-ui/shelf/pkg/metrics"
	"github.com/shelf-ui/shelf/pkg/reconcile"
	"github.com/shelf-ui/shelf/pkg/telemetry"
)

// ApplyFunc applies one snapshot and reports the reconciliation outcome.
// It runs on the Applier's goroutine only.
type ApplyFunc[D any] func(ctx context.Context, snapshot []D) reconcile.Stats

// config holds Applier options shared across instantiations.
type config struct {
	logger   *slog.Logger
	recorder *metrics.Recorder
	tracer   *telemetry.Tracer
}

// Option configures an Applier.
type Option func(*config)

// WithLogger sets the logger (default: slog.Default).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRecorder records snapshot and reconciliation metrics.
func WithRecorder(recorder *metrics.Recorder) Option {
	return func(c *config) {
		c.recorder = recorder
	}
}

// WithTracer wraps each apply in a trace span.
func WithTracer(tracer *telemetry.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

// Applier serializes snapshot application for one container.
type Applier[D any] struct {
	apply ApplyFunc[D]
	ch    chan []D
	cfg   config
}

// NewApplier creates an Applier around apply.
func NewApplier[D any](apply ApplyFunc[D], opts ...Option) *Applier[D] {
	cfg := config{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Applier[D]{
		apply: apply,
		ch:    make(chan []D, 1),
		cfg:   cfg,
	}
}

// Offer hands a snapshot to the applier without blocking. If a previous
// snapshot is still waiting, it is replaced; last writer wins.
func (a *Applier[D]) Offer(snapshot []D) {
	a.cfg.recorder.ObserveSnapshot()
	for {
		select {
		case a.ch <- snapshot:
			return
		default:
		}
		// Queue full: displace the stale snapshot and retry.
		select {
		case <-a.ch:
			a.cfg.recorder.ObserveStale()
		default:
		}
	}
}

// Run applies offered snapshots until ctx is cancelled. All applies happen
// on this goroutine, satisfying the engine's serialization requirement.
func (a *Applier[D]) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snapshot := <-a.ch:
			a.applyOne(ctx, snapshot)
		}
	}
}

// ApplyNow applies a snapshot synchronously on the calling goroutine,
// bypassing the queue. Intended for setup and tests where the caller is
// already the sole mutator.
func (a *Applier[D]) ApplyNow(ctx context.Context, snapshot []D) reconcile.Stats {
	return a.applyOne(ctx, snapshot)
}

func (a *Applier[D]) applyOne(ctx context.Context, snapshot []D) reconcile.Stats {
	start := time.Now()
	stats := a.cfg.tracer.Reconcile(ctx, len(snapshot), func(ctx context.Context) reconcile.Stats {
		return a.apply(ctx, snapshot)
	})
	a.cfg.recorder.ObserveRun(stats, time.Since(start))
	a.cfg.logger.Debug("snapshot applied",
		"size", len(snapshot),
		"inserted", stats.Inserted,
		"removed", stats.Removed,
		"updated", stats.Updated,
	)
	return stats
}
