package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/viewkit/cache"
	"github.com/jonwraymond/viewkit/engine"
	"github.com/jonwraymond/viewkit/locator"
	"github.com/jonwraymond/viewkit/mimetype"
	"github.com/jonwraymond/viewkit/observe"
	"github.com/jonwraymond/viewkit/view"
)

// Build assembles a Renderer and its Observer from cfg. The caller owns the
// Observer and must Shutdown it.
//
// With caching enabled, template loading and path resolution each get their
// own store, exported as the "templates" and "paths" cache metrics.
func Build(ctx context.Context, cfg Config) (*view.Renderer, observe.Observer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	obs, err := observe.NewObserver(ctx, cfg.Observe)
	if err != nil {
		return nil, nil, err
	}

	r, err := assemble(cfg, obs)
	if err != nil {
		return nil, nil, errors.Join(err, obs.Shutdown(ctx))
	}
	return r, obs, nil
}

func assemble(cfg Config, obs observe.Observer) (*view.Renderer, error) {
	types := mimetype.New(cfg.Views.Types)

	var loc locator.Locator = locator.New(locator.Options{
		BaseDir:       cfg.Views.Dir,
		BoundaryMatch: cfg.Views.BoundaryMatch,
		Types:         types,
	})
	var loader engine.Loader = engine.NewFileLoader(nil, engineOptions(cfg.Views))

	if cfg.Cache.Enabled {
		cachedLoc := locator.NewCached(loc, newStore[locator.Query, locator.Resolution](cfg.Cache.Mode, "paths"))
		cachedLoader := engine.NewCachedLoader(loader, newStore[string, engine.Template](cfg.Cache.Mode, "templates"))

		if err := observe.RegisterCacheStats(obs.Meter(), "paths", cachedLoc); err != nil {
			return nil, fmt.Errorf("config: register path cache metrics: %w", err)
		}
		if err := observe.RegisterCacheStats(obs.Meter(), "templates", cachedLoader); err != nil {
			return nil, fmt.Errorf("config: register template cache metrics: %w", err)
		}
		loc, loader = cachedLoc, cachedLoader
	}

	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		return nil, err
	}

	return view.New(view.Options{
		Locator:    loc,
		Loader:     loader,
		BaseDir:    cfg.Views.Dir,
		Types:      types,
		Middleware: mw,
		Logger:     obs.Logger(),
	}), nil
}

func newStore[K comparable, V any](mode, namespace string) cache.Store[K, V] {
	if mode == CacheModeFlight {
		return cache.NewFlightStore[K, V](namespace, nil)
	}
	return cache.NewMemoryStore[K, V]()
}

// engineOptions maps the template settings onto every engine.
func engineOptions(vc ViewsConfig) engine.OptionsFunc {
	opts := engine.Options{MissingKey: vc.MissingKey}
	if len(vc.Delims) == 2 {
		opts.Delims = [2]string{vc.Delims[0], vc.Delims[1]}
	}
	return func(engine.Engine) engine.Options {
		return opts
	}
}
