package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Loader turns a physical template path into a Template.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: a missing file or empty path returns an error wrapping
// ErrNotFound; an unknown extension returns ErrUnsupportedEngine.
type Loader interface {
	Load(ctx context.Context, path string) (Template, error)
}

// FileLoader reads templates from disk and parses them with the engine
// registered for their extension.
type FileLoader struct {
	registry *Registry
	options  OptionsFunc
	readFile func(string) ([]byte, error)
}

// NewFileLoader creates a FileLoader. A nil registry means DefaultRegistry,
// and a nil options hook means NoOptions.
func NewFileLoader(registry *Registry, options OptionsFunc) *FileLoader {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if options == nil {
		options = NoOptions
	}
	return &FileLoader{
		registry: registry,
		options:  options,
		readFile: os.ReadFile,
	}
}

// Load reads and parses the template at path.
func (l *FileLoader) Load(ctx context.Context, path string) (Template, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no template path", ErrNotFound)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e, err := l.registry.For(path)
	if err != nil {
		return nil, err
	}

	src, err := l.readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("engine: read %s: %w", path, err)
	}

	t, err := e.Parse(path, string(src), l.options(e))
	if err != nil {
		return nil, fmt.Errorf("engine: parse %s: %w", path, err)
	}
	return t, nil
}

// Ensure FileLoader implements Loader
var _ Loader = (*FileLoader)(nil)
