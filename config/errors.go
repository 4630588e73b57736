package config

import "errors"

var (
	// ErrMissingViewsDir indicates views.dir is empty.
	ErrMissingViewsDir = errors.New("config: views.dir is required")

	// ErrInvalidCacheMode indicates cache.mode is neither "mutex" nor "flight".
	ErrInvalidCacheMode = errors.New("config: invalid cache mode")

	// ErrInvalidDelims indicates views.delims does not hold exactly two
	// non-empty strings.
	ErrInvalidDelims = errors.New("config: views.delims must be two non-empty strings")

	// ErrInvalidMissingKey indicates an unknown views.missing_key value.
	ErrInvalidMissingKey = errors.New("config: invalid views.missing_key")

	// ErrMissingEnv indicates a ${VAR} reference to an unset variable.
	ErrMissingEnv = errors.New("config: missing required environment variables")
)
