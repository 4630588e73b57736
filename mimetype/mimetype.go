package mimetype

import (
	"path/filepath"
	"strings"
)

// DefaultType is returned when no extension of a file name is known.
const DefaultType = "text/plain"

// Resolver looks up content types by file extension.
//
// Contract:
// - Concurrency: a Resolver is immutable after New and safe for concurrent use.
// - Errors: lookups never fail; unknown names resolve to DefaultType.
type Resolver struct {
	types map[string]string
}

// New creates a Resolver over the built-in table. Entries in overrides are
// added on top of it; keys may be given with or without the leading dot.
func New(overrides map[string]string) *Resolver {
	types := make(map[string]string, len(builtin)+len(overrides))
	for ext, typ := range builtin {
		types[ext] = typ
	}
	for ext, typ := range overrides {
		types[normalize(ext)] = typ
	}
	return &Resolver{types: types}
}

// Lookup returns the content type registered for a single extension.
func (r *Resolver) Lookup(ext string) (string, bool) {
	typ, ok := r.types[normalize(ext)]
	return typ, ok
}

// TypeOf returns the content type of a file by inspecting the dot-separated
// parts of its base name from rightmost to leftmost.
func (r *Resolver) TypeOf(path string) string {
	parts := strings.Split(filepath.Base(path), ".")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] == "" {
			continue
		}
		if typ, ok := r.Lookup(parts[i]); ok {
			return typ
		}
	}
	return DefaultType
}

var defaultResolver = New(nil)

// Default returns the Resolver backing the package-level functions.
func Default() *Resolver {
	return defaultResolver
}

// TypeOf resolves path with the default table.
func TypeOf(path string) string {
	return defaultResolver.TypeOf(path)
}

// Lookup resolves a single extension with the default table.
func Lookup(ext string) (string, bool) {
	return defaultResolver.Lookup(ext)
}

func normalize(ext string) string {
	return "." + strings.ToLower(strings.TrimPrefix(ext, "."))
}
