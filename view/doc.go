// Package view renders templates into HTTP responses.
//
// A Renderer is built once per process and holds the locator, loader, and
// instrumentation. Each request gets a fresh View from Renderer.NewView,
// which carries the request's layout and captured content:
//
//	v := renderer.NewView(w, r)
//	v.Layout("layout")
//	if err := v.Render("posts/show", map[string]any{"post": p}, nil); err != nil {
//		...
//	}
//
// Inside templates the view is reachable through the helper functions
// yield, partial, contentFor, hasContentFor, and layout.
package view
