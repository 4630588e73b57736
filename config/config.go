package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/viewkit/observe"
)

// Cache modes.
const (
	CacheModeMutex  = "mutex"
	CacheModeFlight = "flight"
)

var validMissingKeys = []string{"", "default", "invalid", "zero", "error"}

// Config is the top-level settings document.
type Config struct {
	Views   ViewsConfig    `yaml:"views"`
	Cache   CacheConfig    `yaml:"cache"`
	Observe observe.Config `yaml:"observe"`
}

// ViewsConfig locates and parses templates.
type ViewsConfig struct {
	// Dir is the default directory searched for templates.
	Dir string `yaml:"dir"`

	// BoundaryMatch stops "show" from matching "show-archived".
	BoundaryMatch bool `yaml:"boundary_match"`

	// Types adds or overrides extension to content type mappings,
	// e.g. {".vue": "text/x-vue"}.
	Types map[string]string `yaml:"types"`

	// Delims replaces the {{ }} action delimiters when set.
	Delims []string `yaml:"delims"`

	// MissingKey sets the template missingkey option.
	MissingKey string `yaml:"missing_key"`
}

// CacheConfig selects memoization for template loading and resolution.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // mutex|flight
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Views: ViewsConfig{Dir: "views"},
		Cache: CacheConfig{Enabled: true, Mode: CacheModeMutex},
		Observe: observe.Config{
			ServiceName: "viewkit",
			Tracing:     observe.TracingConfig{Exporter: "none", SamplePct: 1.0},
			Metrics:     observe.MetricsConfig{Exporter: "none"},
			Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
		},
	}
}

// Load reads, expands, parses, and validates the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse expands environment references in data and decodes it over
// Default. Keys absent from data keep their defaults.
func Parse(data []byte) (Config, error) {
	expanded, err := ExpandEnvStrict(string(data))
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.Views.Dir == "" {
		return ErrMissingViewsDir
	}
	if n := len(c.Views.Delims); n != 0 && (n != 2 || c.Views.Delims[0] == "" || c.Views.Delims[1] == "") {
		return fmt.Errorf("%w: got %q", ErrInvalidDelims, c.Views.Delims)
	}
	if !slices.Contains(validMissingKeys, c.Views.MissingKey) {
		return fmt.Errorf("%w: %q", ErrInvalidMissingKey, c.Views.MissingKey)
	}
	if c.Cache.Enabled && c.Cache.Mode != CacheModeMutex && c.Cache.Mode != CacheModeFlight {
		return fmt.Errorf("%w: %q", ErrInvalidCacheMode, c.Cache.Mode)
	}
	return c.Observe.Validate()
}
