package engine

import (
	"context"
	"fmt"
)

// Helper function names available inside templates.
const (
	FuncYield         = "yield"
	FuncPartial       = "partial"
	FuncContentFor    = "contentFor"
	FuncHasContentFor = "hasContentFor"
	FuncLayout        = "layout"
)

// Engine parses template source.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: Parse returns syntax errors unchanged; callers add context.
type Engine interface {
	// Name identifies the engine, e.g. "text" or "html".
	Name() string

	// Extensions lists the file extensions (without dot) the engine handles.
	Extensions() []string

	// Parse compiles src into a Template named name.
	Parse(name, src string, opts Options) (Template, error)
}

// Template is a parsed, renderable template.
//
// Contract:
// - Concurrency: Render may be called concurrently with different Helpers.
// - Context: Render should stop early when ctx is already canceled.
type Template interface {
	// Name returns the name the template was parsed with (its file path).
	Name() string

	// Engine returns the name of the engine that parsed the template.
	Engine() string

	// HTMLSafe reports whether Render output is escaped for HTML.
	HTMLSafe() bool

	// Render executes the template with locals as dot.
	Render(ctx context.Context, h Helpers, locals map[string]any) (string, error)
}

// Options is the construction bag passed to Engine.Parse.
type Options struct {
	// Delims overrides the action delimiters when both are non-empty.
	Delims [2]string

	// Funcs adds functions to the template. Helper names are reserved and
	// rebound on every render.
	Funcs map[string]any

	// MissingKey sets the missingkey option: "default", "zero" or "error".
	MissingKey string
}

// OptionsFunc chooses construction options for the engine about to parse a
// file. It is the hook for engine-specific configuration.
type OptionsFunc func(e Engine) Options

// NoOptions is the default OptionsFunc. It returns zero Options.
func NoOptions(Engine) Options {
	return Options{}
}

// Block produces nested content on demand.
type Block func() (string, error)

// Content is rendered output handed from one template into another.
type Content struct {
	Text string

	// HTML is set when Text came from an escaping engine. The html engine
	// embeds such content as is and escapes everything else.
	HTML bool
}

// Helpers are the render-context operations bound into a template for one
// Render call. Nil fields behave as no-ops returning empty values.
//
// ContentFor may receive Content values among its arguments: the html engine
// passes its own helper output that way so it stays marked as escaped.
type Helpers struct {
	Yield         func() (Content, error)
	Partial       func(name string, args ...any) (Content, error)
	ContentFor    func(key string, values ...any) (Content, error)
	HasContentFor func(key string) bool
	Layout        func(path ...string) string
}

func (h Helpers) yield() (Content, error) {
	if h.Yield == nil {
		return Content{}, nil
	}
	return h.Yield()
}

func (h Helpers) partial(name string, args ...any) (Content, error) {
	if h.Partial == nil {
		return Content{}, nil
	}
	return h.Partial(name, args...)
}

func (h Helpers) contentFor(key string, values ...any) (Content, error) {
	if h.ContentFor == nil {
		return Content{}, nil
	}
	return h.ContentFor(key, values...)
}

func (h Helpers) hasContentFor(key string) bool {
	if h.HasContentFor == nil {
		return false
	}
	return h.HasContentFor(key)
}

// layout sets the layout and returns "" so the call prints nothing.
func (h Helpers) layout(path ...string) string {
	if h.Layout != nil {
		h.Layout(path...)
	}
	return ""
}

// placeholderFuncs lets templates reference helpers at parse time.
func placeholderFuncs() map[string]any {
	return map[string]any{
		FuncYield:         func() string { return "" },
		FuncPartial:       func(string, ...any) string { return "" },
		FuncContentFor:    func(string, ...any) string { return "" },
		FuncHasContentFor: func(string) bool { return false },
		FuncLayout:        func(...string) string { return "" },
	}
}

func checkMissingKey(v string) error {
	switch v {
	case "default", "invalid", "zero", "error":
		return nil
	}
	return fmt.Errorf("engine: unknown missingkey option %q", v)
}
