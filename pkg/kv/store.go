// Package kv provides a generic thread-safe key-value table with dirty
// tracking, used as the in-memory image of a file-backed store.
package kv

import (
	"iter"
	"maps"
	"sync"
)

// Store is a thread-safe generic key-value table. Every mutation marks the
// table dirty until MarkClean is called.
type Store[K comparable, V any] struct {
	mu    sync.RWMutex
	data  map[K]V
	dirty bool
}

// New creates an empty table.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		data: make(map[K]V),
	}
}

// Load replaces the table contents with items without marking it dirty.
func (s *Store[K, V]) Load(items map[K]V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[K]V, len(items))
	for k, v := range items {
		s.data[k] = v
	}
	s.dirty = false
}

// Snapshot returns a copy of the table contents.
func (s *Store[K, V]) Snapshot() map[K]V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.data)
}

// Restore replaces the table contents with a previous snapshot. The dirty
// flag is left as is.
func (s *Store[K, V]) Restore(items map[K]V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = maps.Clone(items)
	if s.data == nil {
		s.data = make(map[K]V)
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Set stores a value by key.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	s.dirty = true
}

// Delete removes a key and reports whether it was present.
func (s *Store[K, V]) Delete(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return false
	}
	delete(s.data, key)
	s.dirty = true
	return true
}

// Len returns the number of items in the table.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Keys returns all keys matching keep, in no particular order. A nil keep
// returns every key.
func (s *Store[K, V]) Keys(keep func(K) bool) []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]K, 0, len(s.data))
	for k := range s.data {
		if keep == nil || keep(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// All iterates over a snapshot of the table.
func (s *Store[K, V]) All() iter.Seq2[K, V] {
	s.mu.RLock()
	snapshot := make(map[K]V, len(s.data))
	for k, v := range s.data {
		snapshot[k] = v
	}
	s.mu.RUnlock()

	return func(yield func(K, V) bool) {
		for k, v := range snapshot {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Dirty reports whether the table changed since the last Load or MarkClean.
func (s *Store[K, V]) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// MarkClean clears the dirty flag after the table has been persisted.
func (s *Store[K, V]) MarkClean() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}
