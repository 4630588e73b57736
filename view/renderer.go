package view

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonwraymond/viewkit/engine"
	"github.com/jonwraymond/viewkit/locator"
	"github.com/jonwraymond/viewkit/mimetype"
	"github.com/jonwraymond/viewkit/observe"
)

// Options configures a Renderer. Zero fields get defaults.
type Options struct {
	// Locator resolves logical names. Default: locator.New with BaseDir and Types.
	Locator locator.Locator

	// Loader loads physical templates. Default: engine.NewFileLoader(nil, nil).
	Loader engine.Loader

	// BaseDir is searched when a render names no "from" directory. Empty
	// leaves the choice to the Locator.
	BaseDir string

	// Types maps templates to content types. Default: mimetype.Default().
	Types *mimetype.Resolver

	// Middleware instruments Render. Nil means no instrumentation.
	Middleware *observe.Middleware

	// Logger receives debug entries for resolution. Default: no-op.
	Logger observe.Logger
}

// Renderer is the process-wide rendering service.
//
// Contract:
// - Concurrency: safe for concurrent use; per-request state lives in View.
// - Ownership: the Renderer does not own the Locator or Loader caches.
type Renderer struct {
	locator    locator.Locator
	loader     engine.Loader
	baseDir    string
	types      *mimetype.Resolver
	middleware *observe.Middleware
	logger     observe.Logger
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	if opts.Types == nil {
		opts.Types = mimetype.Default()
	}
	if opts.Locator == nil {
		opts.Locator = locator.New(locator.Options{BaseDir: opts.BaseDir, Types: opts.Types})
	}
	if opts.Loader == nil {
		opts.Loader = engine.NewFileLoader(nil, nil)
	}
	if opts.Logger == nil {
		opts.Logger = observe.NopLogger()
	}
	return &Renderer{
		locator:    opts.Locator,
		loader:     opts.Loader,
		baseDir:    opts.BaseDir,
		types:      opts.Types,
		middleware: opts.Middleware,
		logger:     opts.Logger,
	}
}

// NewView starts the per-request state for one response. A nil request is
// treated as one without headers.
func (r *Renderer) NewView(w http.ResponseWriter, req *http.Request) *View {
	return &View{
		r:        r,
		w:        w,
		req:      req,
		id:       uuid.NewString(),
		captured: make(map[string][]engine.Content),
	}
}

// Resolve maps logical to a physical path, choosing among candidates with
// the Accept header value. An empty from means the Renderer's BaseDir.
func (r *Renderer) Resolve(ctx context.Context, logical, from, accept string) (string, bool, error) {
	if r.locator == nil {
		return "", false, ErrNilLocator
	}
	if from == "" {
		from = r.baseDir
	}
	return r.locator.Resolve(ctx, locator.Query{Logical: logical, From: from, Accept: accept})
}

// Load returns the parsed template at path.
func (r *Renderer) Load(ctx context.Context, path string) (engine.Template, error) {
	if r.loader == nil {
		return nil, ErrNilLoader
	}
	return r.loader.Load(ctx, path)
}

// MIMEType returns the content type for a template path.
func (r *Renderer) MIMEType(path string) string {
	if r.types == nil {
		return mimetype.TypeOf(path)
	}
	return r.types.TypeOf(path)
}

func (r *Renderer) log() observe.Logger {
	if r.logger == nil {
		return observe.NopLogger()
	}
	return r.logger
}
