// Package finder searches a tree of call recordings laid out as
//
//	<base>/<YYYY-MM...>/**/(IN|OUT)/**/<file>
//
// and guards every caller-supplied path so it stays inside the base directory.
// It never writes to the tree and keeps no state between calls.
package finder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/recfinder/recording-finder/logger"
)

// Finder searches and serves files beneath a single base directory.
type Finder struct {
	base         string
	defaultLimit int
	zipMemory    int64
	log          logger.Logger

	// readDir lists a directory. Swapped in tests to observe traversal.
	readDir func(name string) ([]os.DirEntry, error)
}

// Option configures a Finder.
type Option func(*Finder)

// WithDefaultLimit sets the result cap used when a query has none.
func WithDefaultLimit(n int) Option {
	return func(f *Finder) {
		if n > 0 {
			f.defaultLimit = min(n, MAX_LIMIT)
		}
	}
}

// WithLogger sets the logger used for skipped directories and entries.
func WithLogger(l logger.Logger) Option {
	return func(f *Finder) {
		if l != nil {
			f.log = l
		}
	}
}

// WithZipMemoryLimit sets how many bytes of an archive stay in memory.
func WithZipMemoryLimit(n int64) Option {
	return func(f *Finder) {
		if n >= 0 {
			f.zipMemory = n
		}
	}
}

// New creates a Finder rooted at base. The directory does not have to exist:
// searches against a missing base simply return nothing.
func New(base string, opts ...Option) (*Finder, error) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", base, err)
	}
	abs = filepath.Clean(abs)
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	f := &Finder{
		base:         abs,
		defaultLimit: DEFAULT_LIMIT,
		zipMemory:    DEFAULT_ZIP_MEMORY_LIMIT,
		log:          logger.NewNop(),
		readDir:      os.ReadDir,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Base returns the absolute base directory.
func (f *Finder) Base() string { return f.base }

// DefaultLimit returns the result cap applied when a query sets none.
func (f *Finder) DefaultLimit() int { return f.defaultLimit }

// relative returns path relative to the base with forward slashes.
func (f *Finder) relative(path string) (string, error) {
	rel, err := filepath.Rel(f.base, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
