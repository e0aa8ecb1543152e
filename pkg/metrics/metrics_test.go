package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/shelf-ui/shelf/pkg/reconcile"
)

func TestObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(WithRegistry(reg))

	rec.ObserveRun(reconcile.Stats{Inserted: 3, Removed: 1, Updated: 2}, 5*time.Millisecond)
	rec.ObserveRun(reconcile.Stats{Inserted: 1}, time.Millisecond)

	if got := testutil.ToFloat64(rec.itemsTotal.WithLabelValues("insert")); got != 4 {
		t.Errorf("insert total = %v, want 4", got)
	}
	if got := testutil.ToFloat64(rec.itemsTotal.WithLabelValues("remove")); got != 1 {
		t.Errorf("remove total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rec.itemsTotal.WithLabelValues("update")); got != 2 {
		t.Errorf("update total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(rec.runsTotal); got != 2 {
		t.Errorf("runs total = %v, want 2", got)
	}
}

func TestObserveSnapshots(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(WithRegistry(reg), WithNamespace("test"))

	rec.ObserveSnapshot()
	rec.ObserveSnapshot()
	rec.ObserveStale()

	if got := testutil.ToFloat64(rec.snapshots); got != 2 {
		t.Errorf("snapshots total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(rec.stale); got != 1 {
		t.Errorf("stale total = %v, want 1", got)
	}
}

func TestNilRecorder(t *testing.T) {
	var rec *Recorder
	rec.ObserveRun(reconcile.Stats{Inserted: 1}, time.Millisecond)
	rec.ObserveSnapshot()
	rec.ObserveStale()
}
