// Package locator resolves logical template names such as "posts/show" to
// files on disk.
//
// A logical name is a path prefix. Every file under the views directory
// whose path starts with the joined prefix is a candidate, so "posts/show"
// finds "posts/show.html.tmpl" and "posts/show.json.tmpl". Candidates are
// sorted, then the first one whose content type matches the request's
// Accept header wins; without a match the first candidate is used.
//
// Not finding a template is a normal result (ok == false), not an error.
package locator
