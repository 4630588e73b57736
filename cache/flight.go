package cache

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// FlightStore memoizes values with per-key deduplication.
//
// Concurrent callers for the same uncomputed key share one computation via
// singleflight; callers for different keys compute in parallel. Keys are
// converted to flight names with a Keyer.
type FlightStore[K comparable, V any] struct {
	namespace string
	keyer     Keyer[K]

	mu      sync.RWMutex
	entries map[K]V
	group   singleflight.Group
	counters
}

// NewFlightStore creates an empty FlightStore. If keyer is nil, a JSONKeyer
// for K is used.
func NewFlightStore[K comparable, V any](namespace string, keyer Keyer[K]) *FlightStore[K, V] {
	if keyer == nil {
		keyer = NewJSONKeyer[K]()
	}
	return &FlightStore[K, V]{
		namespace: namespace,
		keyer:     keyer,
		entries:   make(map[K]V),
	}
}

// Fetch returns the value for key, computing it once on a miss.
func (s *FlightStore[K, V]) Fetch(key K, compute ComputeFunc[V]) (V, error) {
	var zero V

	if v, ok := s.lookup(key); ok {
		s.hits.Add(1)
		return v, nil
	}
	if compute == nil {
		return zero, ErrNilCompute
	}

	name, err := s.keyer.Key(s.namespace, key)
	if err != nil {
		return zero, err
	}

	led := false
	res, err, _ := s.group.Do(name, func() (any, error) {
		led = true

		// A flight for this key may have finished between lookup and Do.
		if v, ok := s.lookup(key); ok {
			s.hits.Add(1)
			return v, nil
		}
		s.misses.Add(1)

		v, err := compute()
		if err != nil {
			s.errors.Add(1)
			return v, err
		}

		s.mu.Lock()
		s.entries[key] = v
		s.mu.Unlock()
		return v, nil
	})
	if !led && err == nil {
		s.hits.Add(1)
	}

	v, _ := res.(V)
	return v, err
}

func (s *FlightStore[K, V]) lookup(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// Len returns the number of stored entries.
func (s *FlightStore[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stats returns the current counters.
func (s *FlightStore[K, V]) Stats() Stats {
	return s.snapshot()
}

// Ensure FlightStore implements Store
var _ Store[string, int] = (*FlightStore[string, int])(nil)
