package query

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// matchGlob implements the glob filter: `*` matches any run of
// non-separator characters, `?` matches one, `**` crosses separators, and
// matching is case-insensitive on the filename portion. doublestar already
// implements the `*`/`?`/`**` grammar against `/`-separated paths; the
// case-insensitivity is layered on top by lower-casing both sides.
func matchGlob(glob, path string) bool {
	if glob == "" {
		return true
	}
	pattern := strings.ToLower(filepath.ToSlash(glob))
	candidate := strings.ToLower(filepath.ToSlash(path))
	ok, err := doublestar.Match(pattern, candidate)
	if err != nil {
		return false
	}
	if ok {
		return true
	}
	// A bare filename-style glob (no separator) matches against the
	// basename alone, so "*.go" finds Go files regardless of directory.
	if !strings.ContainsAny(pattern, "/") {
		base := strings.ToLower(filepath.Base(path))
		ok, err = doublestar.Match(pattern, base)
		if err != nil {
			return false
		}
		return ok
	}
	return false
}
