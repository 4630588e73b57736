package locator

import (
	"context"

	"github.com/jonwraymond/viewkit/cache"
)

// Resolution is the memoized outcome of a Query. A stored Resolution with
// OK == false records that no template exists.
type Resolution struct {
	Path string
	OK   bool
}

// CachedLocator memoizes resolutions keyed on the full Query.
type CachedLocator struct {
	inner Locator
	store cache.Store[Query, Resolution]
}

// NewCached wraps inner so each distinct Query is resolved at most once.
// Errors from inner are returned and not stored.
func NewCached(inner Locator, store cache.Store[Query, Resolution]) *CachedLocator {
	return &CachedLocator{inner: inner, store: store}
}

// Resolve returns the stored resolution for q, delegating on a miss.
func (c *CachedLocator) Resolve(ctx context.Context, q Query) (string, bool, error) {
	if c.inner == nil {
		return "", false, ErrNilLocator
	}
	if c.store == nil {
		return c.inner.Resolve(ctx, q)
	}

	r, err := c.store.Fetch(q, func() (Resolution, error) {
		path, ok, err := c.inner.Resolve(ctx, q)
		return Resolution{Path: path, OK: ok}, err
	})
	if err != nil {
		return "", false, err
	}
	return r.Path, r.OK, nil
}

// Stats reports the underlying store's counters.
func (c *CachedLocator) Stats() cache.Stats {
	if c.store == nil {
		return cache.Stats{}
	}
	return c.store.Stats()
}

// Ensure CachedLocator implements Locator
var _ Locator = (*CachedLocator)(nil)
