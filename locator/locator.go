package locator

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/jonwraymond/viewkit/accept"
	"github.com/jonwraymond/viewkit/mimetype"
)

// DefaultBaseDir is the directory searched when neither the query nor the
// options name one.
const DefaultBaseDir = "views"

// ErrNilLocator indicates a nil Locator was provided.
var ErrNilLocator = errors.New("locator: locator is nil")

// Query identifies one resolution. It is comparable and serves as the
// cache key for memoized lookups.
type Query struct {
	Logical string // extension-less name, e.g. "posts/show"
	From    string // directory to search; empty means the locator default
	Accept  string // raw HTTP Accept header
}

// Locator resolves logical template names to physical paths.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: a missing template returns ok == false and a nil error; I/O
// failures are returned as errors.
type Locator interface {
	Resolve(ctx context.Context, q Query) (path string, ok bool, err error)
}

// Options configures a FileLocator.
type Options struct {
	// BaseDir is searched when Query.From is empty. Default: "views".
	BaseDir string

	// BoundaryMatch requires the character after the logical prefix to be
	// "." or the end of the path, so "show" no longer matches "show-archived".
	BoundaryMatch bool

	// Types maps candidates to content types. Default: mimetype.Default().
	Types *mimetype.Resolver

	// FS opens a directory for enumeration. Default: os.DirFS.
	FS func(dir string) fs.FS
}

// FileLocator enumerates template files on a filesystem.
type FileLocator struct {
	opts Options
}

// New creates a FileLocator, applying defaults for unset options.
func New(opts Options) *FileLocator {
	if opts.BaseDir == "" {
		opts.BaseDir = DefaultBaseDir
	}
	if opts.Types == nil {
		opts.Types = mimetype.Default()
	}
	if opts.FS == nil {
		opts.FS = os.DirFS
	}
	return &FileLocator{opts: opts}
}

// BaseDir returns the default search directory.
func (l *FileLocator) BaseDir() string {
	return l.opts.BaseDir
}

// Resolve picks the physical template for q.
func (l *FileLocator) Resolve(ctx context.Context, q Query) (string, bool, error) {
	candidates, err := l.Candidates(ctx, q.Logical, q.From)
	if err != nil {
		return "", false, err
	}
	if len(candidates) == 0 {
		return "", false, nil
	}

	accepts := accept.Specific(accept.Parse(q.Accept))
	for _, c := range candidates {
		if accept.MatchAny(l.opts.Types.TypeOf(c), accepts) {
			return c, true, nil
		}
	}
	return candidates[0], true, nil
}

// Candidates returns every file under from (or the base directory) whose
// path starts with the logical prefix, sorted lexicographically.
func (l *FileLocator) Candidates(ctx context.Context, logical, from string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if from == "" {
		from = l.opts.BaseDir
	}
	prefix := filepath.Join(from, logical)
	if dirPrefix(logical) {
		// Join drops the trailing separator; "posts/" must not match "posts.txt.tmpl".
		prefix += string(filepath.Separator)
	}

	matches, err := doublestar.Glob(l.opts.FS(from), "**/*",
		doublestar.WithFilesOnly(),
		doublestar.WithFailOnIOErrors(),
	)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var candidates []string
	for _, m := range matches {
		if hidden(m) {
			continue
		}
		path := filepath.Join(from, filepath.FromSlash(m))
		if l.matches(path, prefix) {
			candidates = append(candidates, path)
		}
	}

	sort.Strings(candidates)
	return candidates, nil
}

func (l *FileLocator) matches(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	if !l.opts.BoundaryMatch {
		return true
	}
	if strings.HasSuffix(prefix, string(filepath.Separator)) {
		return true
	}
	rest := path[len(prefix):]
	return rest == "" || rest[0] == '.'
}

func dirPrefix(logical string) bool {
	return logical != "" && (strings.HasSuffix(logical, "/") || strings.HasSuffix(logical, string(filepath.Separator)))
}

// hidden reports whether any segment of a slash-separated path is a dot file.
func hidden(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// Ensure FileLocator implements Locator
var _ Locator = (*FileLocator)(nil)
