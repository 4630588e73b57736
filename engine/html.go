package engine

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

type htmlEngine struct{}

// HTML returns the html/template engine for .gohtml files.
//
// Helper output is inserted unescaped only when it is Content produced by
// this engine. Output of the text engine and of Go blocks is escaped in
// context like any other value.
func HTML() Engine {
	return htmlEngine{}
}

func (htmlEngine) Name() string { return "html" }

func (htmlEngine) Extensions() []string { return []string{"gohtml"} }

func (e htmlEngine) Parse(name, src string, opts Options) (Template, error) {
	t := template.New(name).Funcs(placeholderFuncs()).Funcs(opts.Funcs)
	if opts.Delims[0] != "" && opts.Delims[1] != "" {
		t = t.Delims(opts.Delims[0], opts.Delims[1])
	}
	if opts.MissingKey != "" {
		if err := checkMissingKey(opts.MissingKey); err != nil {
			return nil, err
		}
		t = t.Option("missingkey=" + opts.MissingKey)
	}

	parsed, err := t.Parse(src)
	if err != nil {
		return nil, err
	}
	return &htmlTemplate{tpl: parsed}, nil
}

type htmlTemplate struct {
	tpl *template.Template
}

func (t *htmlTemplate) Name() string   { return t.tpl.Name() }
func (t *htmlTemplate) Engine() string { return "html" }
func (t *htmlTemplate) HTMLSafe() bool { return true }

func (t *htmlTemplate) Render(ctx context.Context, h Helpers, locals map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// The original is never executed, which keeps it clonable.
	c, err := t.tpl.Clone()
	if err != nil {
		return "", fmt.Errorf("engine: clone %s: %w", t.Name(), err)
	}
	c.Funcs(template.FuncMap{
		FuncYield: func() (any, error) {
			c, err := h.yield()
			return htmlValue(c), err
		},
		FuncPartial: func(name string, args ...any) (any, error) {
			c, err := h.partial(name, args...)
			return htmlValue(c), err
		},
		FuncContentFor: func(key string, values ...any) (any, error) {
			c, err := h.contentFor(key, markHTML(values)...)
			return htmlValue(c), err
		},
		FuncHasContentFor: h.hasContentFor,
		FuncLayout:        h.layout,
	})

	var buf bytes.Buffer
	if err := c.Execute(&buf, dot(locals)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// htmlValue hands escaped content to html/template as template.HTML and
// everything else as a plain string, which the template escapes.
func htmlValue(c Content) any {
	if c.HTML {
		return template.HTML(c.Text)
	}
	return c.Text
}

// markHTML turns template.HTML arguments back into escaped Content.
func markHTML(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		if h, ok := v.(template.HTML); ok {
			v = Content{Text: string(h), HTML: true}
		}
		out[i] = v
	}
	return out
}
