package view

import "errors"

var (
	// ErrNilLocator indicates a Renderer without a Locator, such as the zero value.
	ErrNilLocator = errors.New("view: locator is nil")

	// ErrNilLoader indicates a Renderer without a Loader, such as the zero value.
	ErrNilLoader = errors.New("view: loader is nil")

	// ErrBadPartialArgs indicates a template called partial with arguments
	// that are neither one map nor key/value pairs.
	ErrBadPartialArgs = errors.New("view: partial arguments must be a map or key/value pairs")
)
