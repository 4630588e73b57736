package engine

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Registry maps file extensions to engines.
type Registry struct {
	mu    sync.RWMutex
	byExt map[string]Engine
}

// NewRegistry creates a Registry holding engines. Nil engines are skipped.
func NewRegistry(engines ...Engine) *Registry {
	r := &Registry{byExt: make(map[string]Engine)}
	for _, e := range engines {
		_ = r.Register(e)
	}
	return r
}

// DefaultRegistry returns a Registry with the text and html engines.
func DefaultRegistry() *Registry {
	return NewRegistry(Text(), HTML())
}

// Register adds e for each of its extensions, replacing earlier engines.
func (r *Registry) Register(e Engine) error {
	if e == nil {
		return ErrNilEngine
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range e.Extensions() {
		r.byExt[normalizeExt(ext)] = e
	}
	return nil
}

// For returns the engine registered for the rightmost extension of path.
func (r *Registry) For(path string) (Engine, error) {
	ext := normalizeExt(filepath.Ext(path))

	r.mu.RLock()
	e, ok := r.byExt[ext]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w for %q", ErrUnsupportedEngine, filepath.Base(path))
	}
	return e, nil
}

// Extensions lists the registered extensions.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
