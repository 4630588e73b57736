package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/viewkit/engine"
	"github.com/jonwraymond/viewkit/observe"
	"github.com/jonwraymond/viewkit/view"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr, layout, index string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the views directory over HTTP",
		Long: `Serve renders the template named by the request path. Query parameters
become template locals. A missing template is a 404.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, obs, cleanup, err := root.build(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newHandler(r, obs.Logger(), layout, index),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return listen(cmd.Context(), srv, obs.Logger())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&layout, "layout", "", "layout applied to every page")
	cmd.Flags().StringVar(&index, "index", "index", "logical name served for /")
	return cmd
}

// listen serves until ctx is done, then shuts the server down gracefully.
func listen(ctx context.Context, srv *http.Server, log observe.Logger) error {
	errc := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", observe.Field{Key: "addr", Value: srv.Addr})
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newHandler maps request paths to logical template names.
func newHandler(r *view.Renderer, log observe.Logger, layout, index string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet && req.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		logical := strings.Trim(req.URL.Path, "/")
		if logical == "" {
			logical = index
		}
		if hasDotSegment(logical) {
			http.NotFound(w, req)
			return
		}

		locals := make(map[string]any)
		for k, vs := range req.URL.Query() {
			// The search directory is not the client's to choose.
			if k == view.LocalFrom || len(vs) == 0 {
				continue
			}
			locals[k] = vs[0]
		}

		v := r.NewView(w, req)
		v.Layout(layout)
		err := v.Render(logical, locals, nil)
		switch {
		case err == nil:
		case errors.Is(err, engine.ErrNotFound):
			http.NotFound(w, req)
		default:
			log.Error(req.Context(), "render failed",
				observe.Field{Key: "logical", Value: logical},
				observe.Field{Key: "view.id", Value: v.ID()},
				observe.Field{Key: "error", Value: err.Error()},
			)
			http.Error(w, fmt.Sprintf("render failed (view %s)", v.ID()), http.StatusInternalServerError)
		}
	})
}

// hasDotSegment rejects names like "../secret" and ".hidden".
func hasDotSegment(logical string) bool {
	for _, seg := range strings.Split(logical, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
