package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/viewkit/config"
	"github.com/jonwraymond/viewkit/observe"
	"github.com/jonwraymond/viewkit/view"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	viewsDir   string
	boundary   bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "viewctl",
		Short: "Resolve, render, and serve view templates",
		Long: `viewctl works with a directory of view templates.

A logical name like "posts/show" is matched against every file under the
views directory whose path starts with it. When several match, the Accept
header picks the first one whose content type it accepts; otherwise the
lexicographically first file wins.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.StringVar(&opts.viewsDir, "views", "", "views directory (overrides views.dir)")
	flags.BoolVar(&opts.boundary, "boundary", false, "require a '.' after the logical name")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug|info|warn|error")

	cmd.AddCommand(
		newResolveCmd(opts),
		newRenderCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

// load reads the configuration file when given and applies flag overrides.
func (o *rootOptions) load() (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}

	if o.viewsDir != "" {
		cfg.Views.Dir = o.viewsDir
	}
	if o.boundary {
		cfg.Views.BoundaryMatch = true
	}
	if o.logLevel != "" {
		cfg.Observe.Logging.Level = o.logLevel
	}
	return cfg, cfg.Validate()
}

// build assembles the renderer for cmd. The returned cleanup shuts the
// observer down.
func (o *rootOptions) build(cmd *cobra.Command) (*view.Renderer, observe.Observer, func(), error) {
	cfg, err := o.load()
	if err != nil {
		return nil, nil, nil, err
	}
	// Keep stdout exporters away from rendered output.
	cfg.Observe.Output = cmd.ErrOrStderr()

	ctx := cmd.Context()
	r, obs, err := config.Build(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build renderer: %w", err)
	}
	cleanup := func() { _ = obs.Shutdown(context.WithoutCancel(ctx)) }
	return r, obs, cleanup, nil
}
