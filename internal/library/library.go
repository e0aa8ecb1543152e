// Package library holds the demo application catalog that snapshots are
// taken from.
//
// Library is the external data source behind the reconciler in this
// repository's server: every mutation bumps a revision and wakes
// subscribers, which push a fresh snapshot to connected clients.
package library

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// App is one catalog record. ID is the stable identity key used by
// reconciliation.
type App struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	ThumbKey    string    `json:"thumbKey,omitempty"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Library is a mutable in-memory catalog. It is safe for concurrent use.
type Library struct {
	mu       sync.RWMutex
	apps     []App
	revision uint64
	subs     map[chan struct{}]struct{}
}

// New creates an empty Library.
func New() *Library {
	return &Library{subs: make(map[chan struct{}]struct{})}
}

// Add inserts a new app at the end of the catalog and returns it.
func (l *Library) Add(title, thumbKey, description string) App {
	app := App{
		ID:          uuid.New(),
		Title:       title,
		ThumbKey:    thumbKey,
		Description: description,
		UpdatedAt:   time.Now().UTC(),
	}
	l.mu.Lock()
	l.apps = append(l.apps, app)
	l.bump()
	l.mu.Unlock()
	return app
}

// Remove deletes the app with the given ID and reports whether it existed.
func (l *Library) Remove(id uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := slices.IndexFunc(l.apps, func(a App) bool { return a.ID == id })
	if idx < 0 {
		return false
	}
	l.apps = slices.Delete(l.apps, idx, idx+1)
	l.bump()
	return true
}

// Rename updates the title of the app with the given ID and reports whether
// it existed.
func (l *Library) Rename(id uuid.UUID, title string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := slices.IndexFunc(l.apps, func(a App) bool { return a.ID == id })
	if idx < 0 {
		return false
	}
	l.apps[idx].Title = title
	l.apps[idx].UpdatedAt = time.Now().UTC()
	l.bump()
	return true
}

// Snapshot returns a copy of the catalog in insertion order.
func (l *Library) Snapshot() []App {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.apps)
}

// Len returns the number of apps.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.apps)
}

// Revision returns the current mutation counter.
func (l *Library) Revision() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.revision
}

// Subscribe returns a channel that receives a signal after every mutation,
// plus an unsubscribe function. Signals are coalesced: a subscriber that
// has not drained the channel misses no state, only intermediate wakeups.
func (l *Library) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	l.mu.Lock()
	l.subs[ch] = struct{}{}
	l.mu.Unlock()

	unsubscribe := func() {
		l.mu.Lock()
		delete(l.subs, ch)
		l.mu.Unlock()
	}
	return ch, unsubscribe
}

// bump increments the revision and wakes subscribers. Caller holds mu.
func (l *Library) bump() {
	l.revision++
	for ch := range l.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
