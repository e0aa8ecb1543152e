// Package thumbs fetches thumbnail image bytes for list items.
//
// A Store is the expensive external resource that gated items acquire the
// presentation of: fetching bytes is independent of mount state, while
// showing them is gated on it (see packages gate and item).
package thumbs

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrNotFound is returned when no thumbnail exists for a key.
var ErrNotFound = errors.New("thumbs: not found")

// Store supplies thumbnail bytes and their content type by key.
type Store interface {
	Get(ctx context.Context, key string) (data []byte, contentType string, err error)
}

// MemStore is an in-memory Store, used by tests and the demo server.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]memEntry
}

type memEntry struct {
	data        []byte
	contentType string
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string]memEntry)}
}

// Put stores bytes under key.
func (m *MemStore) Put(key string, data []byte, contentType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memEntry{data: data, contentType: contentType}
}

// Get implements Store.
func (m *MemStore) Get(_ context.Context, key string) ([]byte, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, "", ErrNotFound
	}
	// Callers own what they get back; never hand out the cached slice.
	return slices.Clone(e.data), e.contentType, nil
}
