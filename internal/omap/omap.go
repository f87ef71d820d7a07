// Package omap implements a minimal insertion-ordered string-keyed map,
// used everywhere the RCS format requires round-trippable ordering:
// access lists, symbols, locks, and the delta store itself.
package omap

// Map is an insertion-ordered map from string keys to values of type
// V. The zero value is ready to use. It is not safe for concurrent
// use, matching the single-threaded, synchronous library as a whole.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

func New[V any]() *Map[V] {
	return &Map[V]{values: make(map[string]V)}
}

// Get returns the value for key and whether it was present.
func (m *Map[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Set inserts or overwrites key. A fresh key is appended to the end of
// the iteration order; overwriting an existing key preserves its
// original position.
func (m *Map[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key, if present.
func (m *Map[V]) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The caller must not modify
// the returned slice.
func (m *Map[V]) Keys() []string {
	return m.keys
}

// Each calls fn for every entry in insertion order.
func (m *Map[V]) Each(fn func(key string, value V)) {
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// Clone returns a deep-enough copy: a fresh key slice and map sharing
// no backing storage with m, so later mutation of one does not
// disturb the other. Values of type V are copied by assignment; if V
// is itself a pointer or contains slices, callers needing a deep copy
// of V must clone values themselves before inserting.
func (m *Map[V]) Clone() *Map[V] {
	out := &Map[V]{
		keys:   append([]string(nil), m.keys...),
		values: make(map[string]V, len(m.values)),
	}
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}
