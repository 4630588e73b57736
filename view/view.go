package view

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jonwraymond/viewkit/engine"
	"github.com/jonwraymond/viewkit/observe"
)

// Block produces nested content on demand. It is what a layout yields to.
type Block = engine.Block

// LocalFrom is the locals key naming the directory to resolve from. It is
// removed before the template sees its locals.
const LocalFrom = "from"

// View is the rendering state of one request: the response it writes to,
// the layout, and the content captured under named keys.
//
// A View is not safe for concurrent use. Create one per request with
// Renderer.NewView.
type View struct {
	r        *Renderer
	w        http.ResponseWriter
	req      *http.Request
	id       string
	layout   string
	captured map[string][]engine.Content
}

// ID identifies the view in logs and spans.
func (v *View) ID() string {
	return v.id
}

// Layout sets the layout when given a non-empty path and returns the current
// layout. An empty result means Render writes content unwrapped.
func (v *View) Layout(path ...string) string {
	for _, p := range path {
		if p != "" {
			v.layout = p
			break
		}
	}
	return v.layout
}

// TemplatePath resolves logical using the request's Accept header. An empty
// from searches the default directory.
func (v *View) TemplatePath(logical, from string) (string, bool, error) {
	return v.templatePath(v.context(), logical, from)
}

func (v *View) templatePath(ctx context.Context, logical, from string) (string, bool, error) {
	path, ok, err := v.r.Resolve(ctx, logical, from, v.accept())
	if err != nil {
		return "", false, fmt.Errorf("view: resolve %q: %w", logical, err)
	}
	v.r.log().Debug(ctx, "template resolved",
		observe.Field{Key: "logical", Value: logical},
		observe.Field{Key: "path", Value: path},
		observe.Field{Key: "found", Value: ok},
		observe.Field{Key: "view.id", Value: v.id},
	)
	return path, ok, nil
}

// Template loads the template at a physical path.
func (v *View) Template(path string) (engine.Template, error) {
	return v.r.Load(v.context(), path)
}

// MIMEType returns the content type of a template path.
func (v *View) MIMEType(path string) string {
	return v.r.MIMEType(path)
}

// Partial renders logical with locals and returns the result without
// writing it. A "from" local selects the search directory and is not passed
// on. inner, when non-nil, is what the template yields.
func (v *View) Partial(logical string, locals map[string]any, inner Block) (string, error) {
	c, err := v.partial(v.context(), logical, locals, plain(inner))
	return c.Text, err
}

func (v *View) partial(ctx context.Context, logical string, locals map[string]any, inner contentBlock) (engine.Content, error) {
	locals = copyLocals(locals)
	from, _ := locals[LocalFrom].(string)
	delete(locals, LocalFrom)

	path, ok, err := v.templatePath(ctx, logical, from)
	if err != nil {
		return engine.Content{}, err
	}
	if !ok {
		return engine.Content{}, fmt.Errorf("view: %q: %w", logical, engine.ErrNotFound)
	}

	tpl, err := v.r.Load(ctx, path)
	if err != nil {
		return engine.Content{}, err
	}
	s, err := tpl.Render(ctx, v.helpers(ctx, inner), locals)
	if err != nil {
		return engine.Content{}, err
	}
	return engine.Content{Text: s, HTML: tpl.HTMLSafe()}, nil
}

// Render renders logical, wraps it in the layout when one is set, and writes
// the result with the Content-Type of the template named by logical. Nothing
// is written when rendering fails.
func (v *View) Render(logical string, locals map[string]any, inner Block) error {
	from, _ := locals[LocalFrom].(string)

	ctx := v.context()
	path, ok, err := v.templatePath(ctx, logical, from)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("view: %q: %w", logical, engine.ErrNotFound)
	}

	meta := observe.TemplateMeta{
		Logical:  logical,
		Path:     path,
		Layout:   v.layout,
		MIMEType: v.MIMEType(path),
		ViewID:   v.id,
	}

	render := func(ctx context.Context, meta *observe.TemplateMeta) (string, error) {
		page, err := v.partial(ctx, logical, locals, plain(inner))
		if err != nil {
			return "", err
		}
		// The page may have chosen its own layout.
		meta.Layout = v.layout
		if v.layout == "" {
			return page.Text, nil
		}
		wrapped, err := v.partial(ctx, v.layout, locals, func() (engine.Content, error) {
			return page, nil
		})
		return wrapped.Text, err
	}
	if v.r.middleware != nil {
		render = v.r.middleware.Wrap(render)
	}

	body, err := render(ctx, &meta)
	if err != nil {
		return err
	}

	v.w.Header().Set("Content-Type", meta.MIMEType)
	_, err = io.WriteString(v.w, body)
	return err
}

// ContentFor captures or emits content under key. With a block, the block's
// output is appended to key and "" is returned. Without one, everything
// captured under key is returned joined and key is cleared.
func (v *View) ContentFor(key string, block Block) (string, error) {
	c, err := v.contentFor(key, plain(block))
	return c.Text, err
}

func (v *View) contentFor(key string, block contentBlock) (engine.Content, error) {
	if block != nil {
		c, err := block()
		if err != nil {
			return engine.Content{}, err
		}
		v.captured[key] = append(v.captured[key], c)
		return engine.Content{}, nil
	}

	parts := v.captured[key]
	delete(v.captured, key)
	return join(parts), nil
}

// HasContentFor reports whether anything is captured under key. It does not
// consume the content.
func (v *View) HasContentFor(key string) bool {
	return len(v.captured[key]) > 0
}

func (v *View) context() context.Context {
	if v.req == nil {
		return context.Background()
	}
	return v.req.Context()
}

func (v *View) accept() string {
	if v.req == nil {
		return ""
	}
	return v.req.Header.Get("Accept")
}

// contentBlock is a Block that knows whether its output is escaped.
type contentBlock func() (engine.Content, error)

// plain adapts a caller's Block. Its output is never trusted as HTML.
func plain(b Block) contentBlock {
	if b == nil {
		return nil
	}
	return func() (engine.Content, error) {
		s, err := b()
		return engine.Content{Text: s}, err
	}
}

// join concatenates captured parts. The result counts as HTML only when
// every part does.
func join(parts []engine.Content) engine.Content {
	var b strings.Builder
	safe := len(parts) > 0
	for _, p := range parts {
		b.WriteString(p.Text)
		safe = safe && p.HTML
	}
	return engine.Content{Text: b.String(), HTML: safe}
}

func copyLocals(locals map[string]any) map[string]any {
	out := make(map[string]any, len(locals))
	for k, val := range locals {
		out[k] = val
	}
	return out
}
