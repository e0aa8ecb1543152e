package server

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/shelf-ui/shelf/internal/library"
	"github.com/shelf-ui/shelf/pkg/dom"
	"github.com/shelf-ui/shelf/pkg/item"
	"github.com/shelf-ui/shelf/pkg/list"
	"github.com/shelf-ui/shelf/pkg/metrics"
	"github.com/shelf-ui/shelf/pkg/reconcile"
	"github.com/shelf-ui/shelf/pkg/sched"
	"github.com/shelf-ui/shelf/pkg/source"
	"github.com/shelf-ui/shelf/pkg/telemetry"
	"github.com/shelf-ui/shelf/pkg/thumbs"
)

// view is the long-lived SSR state: one engine list of tiles kept
// converged with the library. The engine is single-threaded, so all view
// work runs under mu.
type view struct {
	mu      sync.Mutex
	sched   *sched.Scheduler
	list    *list.List[*item.Tile]
	applier *source.Applier[library.App]
	page    *dom.Node
	store   thumbs.Store
	logger  *slog.Logger
}

func newView(store thumbs.Store, recorder *metrics.Recorder, tracer *telemetry.Tracer, logger *slog.Logger) *view {
	v := &view{
		store:  store,
		logger: logger,
		sched:  sched.New(),
		page:   dom.NewElement("main", dom.Class("shelf")),
	}
	v.list = list.New[*item.Tile](nil,
		list.WithTags("ul", "li"),
		list.WithTransitions(v.sched),
		list.WithoutRemountTransitions(),
	)
	v.list.Mount(v.page)

	rec := reconcile.New(v.list, reconcile.Funcs[library.App, *item.Tile]{
		DataKey: func(a library.App) string { return a.ID.String() },
		ItemKey: func(t *item.Tile) string { return t.ID() },
		Create: func(a library.App) *item.Tile {
			return item.New(a.ID.String(), a.Title, a.ThumbKey, v.store)
		},
		Update: func(t *item.Tile, a library.App) {
			t.SetData(a.Title, a.ThumbKey)
		},
	})

	opts := []source.Option{source.WithLogger(logger)}
	if recorder != nil {
		opts = append(opts, source.WithRecorder(recorder))
	}
	if tracer != nil {
		opts = append(opts, source.WithTracer(tracer))
	}
	v.applier = source.NewApplier(func(_ context.Context, snap []library.App) reconcile.Stats {
		return rec.Reconcile(snap)
	}, opts...)

	return v
}

// render converges the view to snapshot and returns the rendered page.
func (v *view) render(ctx context.Context, snapshot []library.App) string {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.applier.ApplyNow(ctx, snapshot)

	// Load thumbnails for tiles that do not have bytes yet. Failures leave
	// the tile without an image; presentation is not the engine's concern.
	for _, tile := range v.list.Items() {
		if tile.Loaded() {
			continue
		}
		if err := tile.Reload(ctx); err != nil {
			v.logger.Debug("thumbnail load failed", "tile", tile.ID(), "error", err)
		}
	}

	// Settle deferred enter transitions so the markup carries final state.
	v.sched.Flush()

	var sb strings.Builder
	sb.WriteString("<!doctype html><html><head><meta charset=\"utf-8\">")
	sb.WriteString("<title>shelf</title></head><body>")
	sb.WriteString(dom.RenderString(v.page))
	sb.WriteString("</body></html>")
	return sb.String()
}
