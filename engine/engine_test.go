package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func mustParse(t *testing.T, e Engine, src string, opts Options) Template {
	t.Helper()
	tpl, err := e.Parse("test", src, opts)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return tpl
}

func TestTextTemplate_Locals(t *testing.T) {
	tpl := mustParse(t, Text(), "Locals {{.what}}!\n", Options{})

	got, err := tpl.Render(context.Background(), Helpers{}, map[string]any{"what": "rule"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got != "Locals rule!\n" {
		t.Errorf("Render = %q", got)
	}
	if tpl.Engine() != "text" || tpl.Name() != "test" {
		t.Errorf("unexpected identity %q/%q", tpl.Engine(), tpl.Name())
	}
}

func TestTextTemplate_NilLocals(t *testing.T) {
	tpl := mustParse(t, Text(), "plain", Options{})
	got, err := tpl.Render(context.Background(), Helpers{}, nil)
	if err != nil || got != "plain" {
		t.Errorf("Render = %q, %v", got, err)
	}
}

func TestTextTemplate_Helpers(t *testing.T) {
	src := `{{layout "wrap"}}[{{yield}}][{{partial "item" "n" 1}}][{{contentFor "head" "x"}}][{{hasContentFor "head"}}][{{contentFor "head"}}]`
	tpl := mustParse(t, Text(), src, Options{})

	var (
		layout   string
		captured []string
		partial  []any
	)
	h := Helpers{
		Yield: func() (Content, error) { return Content{Text: "inner"}, nil },
		Partial: func(name string, args ...any) (Content, error) {
			partial = append([]any{name}, args...)
			return Content{Text: "<item>"}, nil
		},
		ContentFor: func(key string, values ...any) (Content, error) {
			if len(values) > 0 {
				captured = append(captured, values[0].(string))
				return Content{}, nil
			}
			out := strings.Join(captured, "")
			captured = nil
			return Content{Text: out}, nil
		},
		HasContentFor: func(string) bool { return len(captured) > 0 },
		Layout: func(path ...string) string {
			if len(path) > 0 {
				layout = path[0]
			}
			return layout
		},
	}

	got, err := tpl.Render(context.Background(), h, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if want := "[inner][<item>][][true][x]"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
	if layout != "wrap" {
		t.Errorf("layout = %q, want wrap", layout)
	}
	if len(partial) != 3 || partial[0] != "item" || partial[1] != "n" || partial[2] != 1 {
		t.Errorf("partial args = %v", partial)
	}
}

func TestTemplate_NilHelpersAreNoops(t *testing.T) {
	for _, e := range []Engine{Text(), HTML()} {
		tpl := mustParse(t, e, `a{{yield}}{{partial "x"}}{{contentFor "k"}}{{hasContentFor "k"}}{{layout "l"}}b`, Options{})
		got, err := tpl.Render(context.Background(), Helpers{}, nil)
		if err != nil {
			t.Fatalf("%s: Render failed: %v", e.Name(), err)
		}
		if got != "afalseb" {
			t.Errorf("%s: Render = %q", e.Name(), got)
		}
	}
}

func TestTemplate_HelperErrorPropagates(t *testing.T) {
	boom := errors.New("partial missing")
	tpl := mustParse(t, Text(), `{{partial "x"}}`, Options{})

	_, err := tpl.Render(context.Background(), Helpers{
		Partial: func(string, ...any) (Content, error) { return Content{}, boom },
	}, nil)
	if !errors.Is(err, boom) {
		t.Errorf("expected %v, got %v", boom, err)
	}
}

func TestHTMLTemplate_EscapesLocalsNotHTMLContent(t *testing.T) {
	tpl := mustParse(t, HTML(), `<p>{{.name}}</p>{{yield}}{{partial "x"}}`, Options{})

	got, err := tpl.Render(context.Background(), Helpers{
		Yield:   func() (Content, error) { return Content{Text: "<b>inner</b>", HTML: true}, nil },
		Partial: func(string, ...any) (Content, error) { return Content{Text: "<i>p</i>", HTML: true}, nil },
	}, map[string]any{"name": "<script>"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if want := "<p>&lt;script&gt;</p><b>inner</b><i>p</i>"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestHTMLTemplate_EscapesPlainContent(t *testing.T) {
	tpl := mustParse(t, HTML(), `<p>{{yield}}</p><p>{{partial "x"}}</p><p>{{contentFor "k"}}</p>`, Options{})

	raw := Content{Text: "<script>x</script>"}
	got, err := tpl.Render(context.Background(), Helpers{
		Yield:      func() (Content, error) { return raw, nil },
		Partial:    func(string, ...any) (Content, error) { return raw, nil },
		ContentFor: func(string, ...any) (Content, error) { return raw, nil },
	}, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	esc := "&lt;script&gt;x&lt;/script&gt;"
	if want := "<p>" + esc + "</p><p>" + esc + "</p><p>" + esc + "</p>"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestHTMLTemplate_ContentForKeepsHTMLArguments(t *testing.T) {
	tpl := mustParse(t, HTML(), `{{contentFor "k" (partial "x") .name}}`, Options{})

	var got []any
	_, err := tpl.Render(context.Background(), Helpers{
		Partial: func(string, ...any) (Content, error) { return Content{Text: "<i>p</i>", HTML: true}, nil },
		ContentFor: func(_ string, values ...any) (Content, error) {
			got = values
			return Content{}, nil
		},
	}, map[string]any{"name": "<b>"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("contentFor args = %v", got)
	}
	if c, ok := got[0].(Content); !ok || !c.HTML || c.Text != "<i>p</i>" {
		t.Errorf("first arg = %#v, want escaped Content", got[0])
	}
	if s, ok := got[1].(string); !ok || s != "<b>" {
		t.Errorf("second arg = %#v, want plain string", got[1])
	}
}

func TestTemplate_HTMLSafe(t *testing.T) {
	if mustParse(t, Text(), "x", Options{}).HTMLSafe() {
		t.Error("text templates must not report HTML-safe output")
	}
	if !mustParse(t, HTML(), "x", Options{}).HTMLSafe() {
		t.Error("html templates must report HTML-safe output")
	}
}

func TestHTMLTemplate_RenderTwice(t *testing.T) {
	tpl := mustParse(t, HTML(), `<p>{{.n}}</p>`, Options{})

	for _, n := range []string{"one", "two"} {
		got, err := tpl.Render(context.Background(), Helpers{}, map[string]any{"n": n})
		if err != nil {
			t.Fatalf("Render %s failed: %v", n, err)
		}
		if got != "<p>"+n+"</p>" {
			t.Errorf("Render = %q", got)
		}
	}
}

func TestTemplate_ConcurrentRender(t *testing.T) {
	for _, e := range []Engine{Text(), HTML()} {
		tpl := mustParse(t, e, `{{.n}}:{{yield}}`, Options{})

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				inner := strings.Repeat("y", i)
				got, err := tpl.Render(context.Background(), Helpers{
					Yield: func() (Content, error) { return Content{Text: inner}, nil },
				}, map[string]any{"n": i})
				if err != nil {
					t.Errorf("Render failed: %v", err)
					return
				}
				if want := fmt.Sprintf("%d:%s", i, inner); got != want {
					t.Errorf("%s: Render = %q, want %q", e.Name(), got, want)
				}
			}(i)
		}
		wg.Wait()
	}
}

func TestParse_Options(t *testing.T) {
	opts := Options{
		Delims:     [2]string{"[[", "]]"},
		Funcs:      map[string]any{"shout": strings.ToUpper},
		MissingKey: "error",
	}

	for _, e := range []Engine{Text(), HTML()} {
		tpl := mustParse(t, e, `[[shout .word]] {{literal}}`, opts)

		got, err := tpl.Render(context.Background(), Helpers{}, map[string]any{"word": "hi"})
		if err != nil {
			t.Fatalf("%s: Render failed: %v", e.Name(), err)
		}
		if got != "HI {{literal}}" {
			t.Errorf("%s: Render = %q", e.Name(), got)
		}

		if _, err := tpl.Render(context.Background(), Helpers{}, map[string]any{}); err == nil {
			t.Errorf("%s: expected missingkey=error to fail", e.Name())
		}
	}
}

func TestParse_InvalidMissingKey(t *testing.T) {
	if _, err := Text().Parse("x", "x", Options{MissingKey: "explode"}); err == nil {
		t.Error("expected error for unknown missingkey option")
	}
}

func TestParse_SyntaxError(t *testing.T) {
	for _, e := range []Engine{Text(), HTML()} {
		if _, err := e.Parse("bad", "{{if}}", Options{}); err == nil {
			t.Errorf("%s: expected syntax error", e.Name())
		}
	}
}

func TestRender_CanceledContext(t *testing.T) {
	tpl := mustParse(t, Text(), "x", Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := tpl.Render(ctx, Helpers{}, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
