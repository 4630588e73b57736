package engine

import (
	"context"

	"github.com/jonwraymond/viewkit/cache"
)

// CachedLoader memoizes loaded templates by physical path.
type CachedLoader struct {
	inner Loader
	store cache.Store[string, Template]
}

// NewCachedLoader wraps inner so each path is read and parsed at most once.
// Load errors are returned and not stored.
func NewCachedLoader(inner Loader, store cache.Store[string, Template]) *CachedLoader {
	return &CachedLoader{inner: inner, store: store}
}

// Load returns the stored template for path, delegating on a miss.
func (c *CachedLoader) Load(ctx context.Context, path string) (Template, error) {
	if c.inner == nil {
		return nil, ErrNilLoader
	}
	if c.store == nil {
		return c.inner.Load(ctx, path)
	}
	return c.store.Fetch(path, func() (Template, error) {
		return c.inner.Load(ctx, path)
	})
}

// Stats reports the underlying store's counters.
func (c *CachedLoader) Stats() cache.Stats {
	if c.store == nil {
		return cache.Stats{}
	}
	return c.store.Stats()
}

// Ensure CachedLoader implements Loader
var _ Loader = (*CachedLoader)(nil)
