// Package engine adapts Go template engines to view rendering.
//
// An Engine parses template source into a Template. Engines are chosen by
// the rightmost extension of a file name through a Registry: the built-in
// text engine handles .tmpl, .gotmpl and .tpl files with text/template, and
// the html engine handles .gohtml files with html/template.
//
// Templates render with their locals as dot and a set of Helpers bound per
// call. Helpers expose the render context to template code:
//
//	{{yield}}                      content of the wrapped block
//	{{partial "posts/item" .}}     render another template
//	{{contentFor "head" "<x>"}}    capture content for later
//	{{contentFor "head"}}          emit (and clear) captured content
//	{{hasContentFor "head"}}       report captured content
//	{{layout "layouts/app"}}       choose the layout from a template
//
// Helper output travels between templates as Content. The html engine
// embeds Content it produced itself as is and escapes everything else, so a
// text partial or a Go block cannot inject markup into an HTML page.
//
// A parsed Template is never executed directly. Each Render clones it and
// binds the call's helpers, so one Template can be cached and shared by
// concurrent requests.
package engine
