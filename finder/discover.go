package finder

import (
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/recfinder/recording-finder/logger"
)

// MonthDirs yields the first-level directories of the base whose name starts
// with one of months, or every first-level directory when months is nil.
// A missing or unreadable base yields nothing. Order is lexical.
// Symlinked month directories are not followed.
func (f *Finder) MonthDirs(months []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		entries, err := f.readDir(f.base)
		if err != nil {
			f.skip(f.base, err)
			return
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if months != nil && !hasAnyPrefix(entry.Name(), months) {
				continue
			}
			if !yield(filepath.Join(f.base, entry.Name())) {
				return
			}
		}
	}
}

// InOutDirs yields every directory at any depth below monthDir whose name is
// IN or OUT, case-insensitively. The tree is walked depth-first with an
// explicit stack in lexical order. A matched directory is not descended into:
// its whole subtree is already covered when its files are collected.
// Symlinked directories, IN/OUT ones included, are not followed and unreadable
// directories are skipped.
func (f *Finder) InOutDirs(monthDir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		stack := []string{monthDir}
		for len(stack) > 0 {
			dir := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if dir != monthDir && isInOut(filepath.Base(dir)) {
				if !yield(dir) {
					return
				}
				continue
			}

			entries, err := f.readDir(dir)
			if err != nil {
				f.skip(dir, err)
				continue
			}
			stack = append(stack, childDirs(dir, entries)...)
		}
	}
}

// ListMonths returns the month directories selected by months together with
// the IN/OUT folders under each, as paths relative to the base.
func (f *Finder) ListMonths(months []string) []MonthNode {
	nodes := []MonthNode{}
	for monthDir := range f.MonthDirs(months) {
		node := MonthNode{Name: filepath.Base(monthDir), InOut: []string{}}
		for dir := range f.InOutDirs(monthDir) {
			if rel, err := f.relative(dir); err == nil {
				node.InOut = append(node.InOut, rel)
			}
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// childDirs returns the subdirectories of dir in reverse lexical order, ready
// to be pushed on a stack so they pop in lexical order.
func childDirs(dir string, entries []os.DirEntry) []string {
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(dir, entry.Name()))
		}
	}
	slices.Reverse(dirs)
	return dirs
}

func isInOut(name string) bool {
	return strings.EqualFold(name, "IN") || strings.EqualFold(name, "OUT")
}

func hasAnyPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// skip records a directory dropped from a traversal. Never surfaced to callers.
func (f *Finder) skip(dir string, err error) {
	f.log.Debug("skipping unreadable directory", logger.String("dir", dir), logger.Error(err))
}
