// Package mimetype maps template file names to content types.
//
// Template files usually carry two extensions: the content type and the
// template engine, as in "show.html.tmpl". TypeOf walks the extensions from
// right to left and returns the first one it knows, so the engine extension
// is skipped and "show.html.tmpl" resolves to text/html.
//
// The table is static. It is a lookup, not a MIME database.
package mimetype
