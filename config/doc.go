// Package config loads viewkit settings from YAML and assembles a ready
// Renderer from them.
//
// String values may reference the environment as ${VAR}. A reference to an
// unset variable is an error rather than an empty string; write $$ for a
// literal dollar sign.
package config
