// pkg/mdc/mdc.go
package mdc

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// Map is a string-keyed diagnostic context.
type Map struct {
	mu     sync.RWMutex
	values map[string]string
}

// New returns an empty Map.
func New() *Map {
	return &Map{values: make(map[string]string)}
}

// Put sets key to value.
func (m *Map) Put(key, value string) {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
}

// Get returns the value for key and whether it was present.
func (m *Map) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Remove deletes key.
func (m *Map) Remove(key string) {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
}

// Len returns the number of entries.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// Snapshot returns a copy of the current entries.
func (m *Map) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.values)
}

// Range calls fn for every entry in key order.
// fn sees a snapshot, so it may modify m.
func (m *Map) Range(fn func(key, value string)) {
	snap := m.Snapshot()
	for _, k := range slices.Sorted(maps.Keys(snap)) {
		fn(k, snap[k])
	}
}

// Context key type
type mapCtxKey struct{}

// NewContext returns a child context carrying a fresh Map.
// The Map is seeded with a copy of the parent's Map, if any.
func NewContext(ctx context.Context) context.Context {
	m := New()
	if parent := FromContext(ctx); parent != nil {
		m.values = parent.Snapshot()
	}
	return context.WithValue(ctx, mapCtxKey{}, m)
}

// WithMap returns a child context carrying m.
func WithMap(ctx context.Context, m *Map) context.Context {
	return context.WithValue(ctx, mapCtxKey{}, m)
}

// FromContext returns the Map carried by ctx, or nil.
func FromContext(ctx context.Context) *Map {
	if ctx == nil {
		return nil
	}
	if m, ok := ctx.Value(mapCtxKey{}).(*Map); ok {
		return m
	}
	return nil
}
