package engine

import (
	"errors"
	"sort"
	"testing"
)

func TestRegistry_For(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		path   string
		engine string
	}{
		{"views/plain.txt.tmpl", "text"},
		{"views/data.json.gotmpl", "text"},
		{"views/legacy.tpl", "text"},
		{"views/page.html.gohtml", "html"},
		{"views/PAGE.HTML.GOHTML", "html"},
	}
	for _, tt := range tests {
		e, err := r.For(tt.path)
		if err != nil {
			t.Errorf("For(%q) failed: %v", tt.path, err)
			continue
		}
		if e.Name() != tt.engine {
			t.Errorf("For(%q) = %s, want %s", tt.path, e.Name(), tt.engine)
		}
	}
}

func TestRegistry_Unsupported(t *testing.T) {
	r := DefaultRegistry()
	for _, path := range []string{"views/show.html.erb", "views/README", "views/page.html"} {
		if _, err := r.For(path); !errors.Is(err, ErrUnsupportedEngine) {
			t.Errorf("For(%q) = %v, want ErrUnsupportedEngine", path, err)
		}
	}
}

// stubEngine registers arbitrary extensions for tests.
type stubEngine struct {
	name string
	exts []string
}

func (s stubEngine) Name() string         { return s.name }
func (s stubEngine) Extensions() []string { return s.exts }
func (s stubEngine) Parse(name, src string, _ Options) (Template, error) {
	return Text().Parse(name, src, Options{})
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(nil); !errors.Is(err, ErrNilEngine) {
		t.Errorf("Register(nil) = %v, want ErrNilEngine", err)
	}

	if err := r.Register(stubEngine{name: "stub", exts: []string{".ERB", "mustache"}}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	e, err := r.For("views/show.html.erb")
	if err != nil || e.Name() != "stub" {
		t.Errorf("For(.erb) = %v, %v", e, err)
	}

	got := r.Extensions()
	sort.Strings(got)
	if len(got) != 2 || got[0] != "erb" || got[1] != "mustache" {
		t.Errorf("Extensions = %v", got)
	}

	// Later registrations replace earlier ones.
	_ = r.Register(stubEngine{name: "other", exts: []string{"erb"}})
	if e, _ := r.For("x.erb"); e.Name() != "other" {
		t.Errorf("expected replacement engine, got %s", e.Name())
	}
}
