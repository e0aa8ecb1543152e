// Package reconcile converges a live list of components to match a fetched
// snapshot by stable identity key.
//
// The reconciler matches records to components by identity while the list
// beneath it caches slots by position; keeping those two layers distinct is
// what makes reconcile cheap for the common tail-only case. Components whose
// key persists across snapshots are never destroyed and keep all accumulated
// internal state; only their displayed data is updated.
//
// Reconcile is not reentrant-safe: invoke it for a given list from one
// goroutine at a time (package source owns that serialization for fetch-fed
// lists).
package reconcile

import (
	"fmt"

	"github.com/shelf-ui/shelf/pkg/list"
)

// Funcs supplies the identity projections and component factory for a
// Reconciler. All four functions are required.
type Funcs[D any, C list.Mountable] struct {
	// DataKey extracts the stable identity key from a snapshot record.
	DataKey func(D) string

	// ItemKey extracts the identity key from a live component. It must
	// project onto the same key space as DataKey.
	ItemKey func(C) string

	// Create builds a new component from a record whose key has no live
	// component.
	Create func(D) C

	// Update hands a matching record to an existing component. The
	// component instance is preserved; only its displayed data changes.
	Update func(C, D)
}

// Stats summarizes one reconciliation.
type Stats struct {
	Inserted int
	Removed  int
	Updated  int
}

// Reconciler drives list mutations so that the live component set converges
// to each snapshot it is handed.
type Reconciler[D any, C list.Mountable] struct {
	list  *list.List[C]
	funcs Funcs[D, C]
}

// New creates a Reconciler over l. Missing projection functions are a
// programmer error.
func New[D any, C list.Mountable](l *list.List[C], funcs Funcs[D, C]) *Reconciler[D, C] {
	if l == nil {
		panic("reconcile: nil list")
	}
	if funcs.DataKey == nil || funcs.ItemKey == nil || funcs.Create == nil || funcs.Update == nil {
		panic("reconcile: all Funcs fields are required")
	}
	return &Reconciler[D, C]{list: l, funcs: funcs}
}

// List returns the underlying list.
func (r *Reconciler[D, C]) List() *list.List[C] {
	return r.list
}

// Reconcile converges the live component set to snapshot.
//
// Pass one walks the live components forward: a component whose key is
// absent from the snapshot is removed (the walk index steps back to account
// for the left shift); a component whose key is present receives the
// matching record via Update. Pass two walks the snapshot forward and
// appends a new component for every record without a live component, so new
// records always land after all persisted ones, in snapshot order.
//
// A snapshot containing duplicate keys is a precondition violation and
// panics.
func (r *Reconciler[D, C]) Reconcile(snapshot []D) Stats {
	byKey := make(map[string]int, len(snapshot))
	for i, record := range snapshot {
		key := r.funcs.DataKey(record)
		if _, dup := byKey[key]; dup {
			panic(fmt.Sprintf("reconcile: duplicate key %q in snapshot", key))
		}
		byKey[key] = i
	}

	var stats Stats

	// Removal/update pass.
	items := r.list.Items()
	for i := 0; i < len(items); i++ {
		key := r.funcs.ItemKey(items[i])
		idx, ok := byKey[key]
		if !ok {
			r.list.Remove(i)
			items = r.list.Items()
			i--
			stats.Removed++
			continue
		}
		r.funcs.Update(items[i], snapshot[idx])
		stats.Updated++
	}

	// Insertion pass.
	live := make(map[string]bool, r.list.Len())
	for _, c := range r.list.Items() {
		live[r.funcs.ItemKey(c)] = true
	}
	for _, record := range snapshot {
		if live[r.funcs.DataKey(record)] {
			continue
		}
		r.list.Append(r.funcs.Create(record))
		stats.Inserted++
	}

	return stats
}
