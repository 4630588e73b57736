package cache

import "sync"

// MemoryStore is a map guarded by a single mutex.
//
// The mutex is held for the entire lookup, compute and store sequence, so
// computations for different keys are also serialized against each other.
type MemoryStore[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V
	counters
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore[K comparable, V any]() *MemoryStore[K, V] {
	return &MemoryStore[K, V]{
		entries: make(map[K]V),
	}
}

// Fetch returns the value for key, running compute under the store lock on a miss.
// A panic in compute unwinds through the deferred unlock and stores nothing.
func (s *MemoryStore[K, V]) Fetch(key K, compute ComputeFunc[V]) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.entries[key]; ok {
		s.hits.Add(1)
		return v, nil
	}
	s.misses.Add(1)

	if compute == nil {
		var zero V
		return zero, ErrNilCompute
	}

	v, err := compute()
	if err != nil {
		s.errors.Add(1)
		return v, err
	}

	s.entries[key] = v
	return v, nil
}

// Len returns the number of stored entries.
func (s *MemoryStore[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stats returns the current counters.
func (s *MemoryStore[K, V]) Stats() Stats {
	return s.snapshot()
}

// Ensure MemoryStore implements Store
var _ Store[string, int] = (*MemoryStore[string, int])(nil)
