package view

import (
	"context"
	"fmt"

	"github.com/jonwraymond/viewkit/engine"
)

// helpers binds the template functions to v for one render.
func (v *View) helpers(ctx context.Context, inner contentBlock) engine.Helpers {
	return engine.Helpers{
		Yield: inner,
		Partial: func(name string, args ...any) (engine.Content, error) {
			locals, err := partialLocals(args)
			if err != nil {
				return engine.Content{}, fmt.Errorf("partial %q: %w", name, err)
			}
			return v.partial(ctx, name, locals, nil)
		},
		ContentFor: func(key string, values ...any) (engine.Content, error) {
			if len(values) == 0 {
				return v.contentFor(key, nil)
			}
			c := captureValues(values)
			return v.contentFor(key, func() (engine.Content, error) { return c, nil })
		},
		HasContentFor: v.HasContentFor,
		Layout:        v.Layout,
	}
}

// captureValues formats template arguments to contentFor. The result is
// HTML only when every argument is escaped Content.
func captureValues(values []any) engine.Content {
	args := make([]any, len(values))
	safe := true
	for i, val := range values {
		c, ok := val.(engine.Content)
		if !ok {
			args[i] = val
			safe = false
			continue
		}
		args[i] = c.Text
		safe = safe && c.HTML
	}
	return engine.Content{Text: fmt.Sprint(args...), HTML: safe}
}

// partialLocals accepts either a single map or alternating string keys and
// values, e.g. {{partial "row" .}} or {{partial "row" "item" .}}.
func partialLocals(args []any) (map[string]any, error) {
	switch {
	case len(args) == 0:
		return nil, nil
	case len(args) == 1:
		if args[0] == nil {
			return nil, nil
		}
		m, ok := args[0].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: got %T", ErrBadPartialArgs, args[0])
		}
		return m, nil
	case len(args)%2 != 0:
		return nil, fmt.Errorf("%w: odd argument count %d", ErrBadPartialArgs, len(args))
	}

	locals := make(map[string]any, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		k, ok := args[i].(string)
		if !ok {
			return nil, fmt.Errorf("%w: key %d is %T", ErrBadPartialArgs, i/2, args[i])
		}
		locals[k] = args[i+1]
	}
	return locals, nil
}
