package main

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/viewkit/view"
)

func newRenderCmd(root *rootOptions) *cobra.Command {
	var (
		accept, from, layout string
		sets                 []string
	)

	cmd := &cobra.Command{
		Use:   "render <logical>",
		Short: "Render a template and print its content type and body",
		Example: `  viewctl render posts/show --accept application/json --set title=Hello
  viewctl render page --layout layout --views ./templates`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locals, err := parseSets(sets)
			if err != nil {
				return err
			}
			if from != "" {
				locals[view.LocalFrom] = from
			}

			r, _, cleanup, err := root.build(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, "/"+args[0], nil)
			if err != nil {
				return err
			}
			if accept != "" {
				req.Header.Set("Accept", accept)
			}

			w := newResponseBuffer()
			v := r.NewView(w, req)
			v.Layout(layout)
			if err := v.Render(args[0], locals, nil); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Content-Type: %s\n\n", w.Header().Get("Content-Type"))
			_, err = out.Write(w.body.Bytes())
			return err
		},
	}

	cmd.Flags().StringVar(&accept, "accept", "", "Accept header used to choose between candidates")
	cmd.Flags().StringVar(&from, "from", "", "directory to search instead of the views directory")
	cmd.Flags().StringVar(&layout, "layout", "", "layout to wrap the output in")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "template local as key=value (repeatable)")
	return cmd
}

// parseSets turns key=value pairs into template locals.
func parseSets(sets []string) (map[string]any, error) {
	locals := make(map[string]any, len(sets))
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", s)
		}
		locals[k] = v
	}
	return locals, nil
}

// responseBuffer is an http.ResponseWriter that keeps the response in memory.
type responseBuffer struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{header: make(http.Header), status: http.StatusOK}
}

func (b *responseBuffer) Header() http.Header         { return b.header }
func (b *responseBuffer) Write(p []byte) (int, error) { return b.body.Write(p) }
func (b *responseBuffer) WriteHeader(status int)      { b.status = status }
