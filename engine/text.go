package engine

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
)

type textEngine struct{}

// Text returns the text/template engine for .tmpl, .gotmpl and .tpl files.
func Text() Engine {
	return textEngine{}
}

func (textEngine) Name() string { return "text" }

func (textEngine) Extensions() []string { return []string{"tmpl", "gotmpl", "tpl"} }

func (e textEngine) Parse(name, src string, opts Options) (Template, error) {
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
	return &textTemplate{tpl: parsed}, nil
}

type textTemplate struct {
	tpl *template.Template
}

func (t *textTemplate) Name() string   { return t.tpl.Name() }
func (t *textTemplate) Engine() string { return "text" }
func (t *textTemplate) HTMLSafe() bool { return false }

func (t *textTemplate) Render(ctx context.Context, h Helpers, locals map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c, err := t.tpl.Clone()
	if err != nil {
		return "", fmt.Errorf("engine: clone %s: %w", t.Name(), err)
	}
	c.Funcs(template.FuncMap{
		FuncYield: func() (string, error) {
			c, err := h.yield()
			return c.Text, err
		},
		FuncPartial: func(name string, args ...any) (string, error) {
			c, err := h.partial(name, args...)
			return c.Text, err
		},
		FuncContentFor: func(key string, values ...any) (string, error) {
			c, err := h.contentFor(key, values...)
			return c.Text, err
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

// dot never hands a nil map to a template.
func dot(locals map[string]any) map[string]any {
	if locals == nil {
		return map[string]any{}
	}
	return locals
}
