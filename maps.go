// maps.go: a map keyed by interned strings, looked up by plain string
//
// SPDX-License-Identifier: MIT
package sinter

import "sync"

// Map is a map from interned strings to values of type V. It exists
// because a plain map[Handle]V forces every caller to intern a key
// before they can even look it up, whereas Go's comparable-key maps have
// no equivalent of Rust's Borrow<str> to look a Handle-keyed entry up by
// its plain string content directly. Map closes that gap: Load takes a
// string and interns it only on the write paths that need a Handle,
// never on a plain read of an already-present key via the fast path.
//
// Map is safe for concurrent use.
type Map[V any] struct {
	mu sync.RWMutex
	m  map[Handle]V
	in *Interner
}

// NewMap returns an empty Map backed by the process-wide interner.
func NewMap[V any]() *Map[V] {
	return NewMapWithInterner[V](globalInterner)
}

// NewMapWithInterner returns an empty Map backed by in, for callers using
// an isolated Interner (see NewInterner).
func NewMapWithInterner[V any](in *Interner) *Map[V] {
	return &Map[V]{m: make(map[Handle]V), in: in}
}

// Load looks up key. If key has never been interned against this Map's
// Interner at all, it cannot be present, so Load skips straight to
// reporting a miss without taking the write path; otherwise it looks the
// resulting Handle up directly.
func (m *Map[V]) Load(key string) (value V, ok bool) {
	h, found := m.in.Get(key)
	if !found {
		return value, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok = m.m[h]
	return value, ok
}

// LoadHandle looks up an already-interned key, with no string interning
// or hashing on the lookup path at all.
func (m *Map[V]) LoadHandle(h Handle) (value V, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok = m.m[h]
	return value, ok
}

// Store interns key and associates it with value, replacing any prior
// value for the same content.
func (m *Map[V]) Store(key string, value V) {
	h := m.in.Intern(key)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[h] = value
}

// StoreHandle associates value with an already-interned key.
func (m *Map[V]) StoreHandle(h Handle, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[h] = value
}

// Delete removes key's entry, if any.
func (m *Map[V]) Delete(key string) {
	h, found := m.in.Get(key)
	if !found {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.m, h)
}

// Len returns the number of entries currently stored.
func (m *Map[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.m)
}

// Range calls f for each entry in the map, in unspecified order, until f
// returns false. Range holds the map's read lock for its duration; f
// must not call back into the same Map.
func (m *Map[V]) Range(f func(h Handle, value V) bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for h, v := range m.m {
		if !f(h, v) {
			return
		}
	}
}
