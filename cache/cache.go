package cache

import (
	"errors"
	"sync/atomic"
)

// Sentinel errors for cache operations.
var (
	ErrNilCompute = errors.New("cache: compute function is nil")
	ErrNilStore   = errors.New("cache: store is nil")
)

// ComputeFunc produces the value for a missing key.
type ComputeFunc[V any] func() (V, error)

// Store memoizes values by key.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - At-most-once: compute runs at most once per key across all successful
// fetches; concurrent callers for an uncomputed key wait for the single
// computation and observe its result.
// - Errors: a failed compute is returned to its caller and not stored.
type Store[K comparable, V any] interface {
	// Fetch returns the stored value for key, computing and storing it on a miss.
	Fetch(key K, compute ComputeFunc[V]) (V, error)

	// Len returns the number of stored entries.
	Len() int

	// Stats returns a snapshot of the hit and miss counters.
	Stats() Stats
}

// Stats counts lookups on a Store.
type Stats struct {
	Hits   int64
	Misses int64
	Errors int64
}

// counters is embedded by the stores to track Stats.
type counters struct {
	hits   atomic.Int64
	misses atomic.Int64
	errors atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Errors: c.errors.Load(),
	}
}
