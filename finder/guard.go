package finder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidPath means a caller-supplied path escapes the base directory.
	ErrInvalidPath = errors.New("invalid path")
	// ErrNotFound means the path is inside the base but is not a regular file.
	ErrNotFound = errors.New("file not found")
)

// Resolve turns a caller-supplied path, relative to the base, into an
// absolute path with ".." and symlinks resolved, and checks it is still
// inside the base. It must be applied to every path a caller sends.
func (f *Finder) Resolve(rel string) (string, error) {
	full := rel
	if !filepath.IsAbs(full) {
		full = filepath.Join(f.base, rel)
	}
	full = filepath.Clean(full)

	resolved, err := filepath.EvalSymlinks(full)
	if err != nil {
		// Nothing to resolve; decide on the lexical path alone.
		if !f.contains(full) {
			return "", fmt.Errorf("%w: %s", ErrInvalidPath, rel)
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, rel)
	}
	if !f.contains(resolved) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, rel)
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotFound, rel)
	}
	return resolved, nil
}

// contains reports whether path is the base or below it.
func (f *Finder) contains(path string) bool {
	if path == f.base {
		return true
	}
	// With a trailing separator /srv/rec does not match /srv/recordings.
	prefix := f.base
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}
