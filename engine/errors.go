package engine

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors for template loading.
var (
	// ErrNotFound indicates the template file does not exist. It wraps
	// fs.ErrNotExist.
	ErrNotFound = fmt.Errorf("engine: template not found: %w", fs.ErrNotExist)

	// ErrUnsupportedEngine indicates no engine is registered for a file's extension.
	ErrUnsupportedEngine = errors.New("engine: no template engine registered")

	// ErrNilEngine indicates a nil Engine was registered.
	ErrNilEngine = errors.New("engine: engine is nil")

	// ErrNilLoader indicates a nil Loader was provided.
	ErrNilLoader = errors.New("engine: loader is nil")
)
