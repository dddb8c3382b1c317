package finder

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/djherbis/times"
	"github.com/gobwas/glob"

	"github.com/recfinder/recording-finder/logger"
)

// Search returns the files under IN/OUT folders whose name contains q.Numero.
//
// A blank number returns an empty result without touching the filesystem.
// The walk stops as soon as the limit is reached, leaving the rest of the tree
// unvisited. Unreadable or vanished directories are skipped silently.
//
// Results come in traversal order: month directories by name, then IN/OUT
// folders depth-first by name, then within a folder its files by name before
// its subdirectories. No other ordering is implied.
//
// The only error returned is ctx.Err() when the caller cancels mid-walk; the
// results collected so far are returned with it.
func (f *Finder) Search(ctx context.Context, q Query) ([]Result, error) {
	results := []Result{}

	numero := strings.TrimSpace(q.Numero)
	if numero == "" {
		return results, nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = f.defaultLimit
	}
	limit = min(limit, MAX_LIMIT)

	match, err := glob.Compile("*" + glob.QuoteMeta(numero) + "*")
	if err != nil {
		return results, nil
	}

	c := &collector{finder: f, match: match, limit: limit, results: results}
	months := ResolveWindow(q.Month, q.Start, q.End)

	for monthDir := range f.MonthDirs(months) {
		for dir := range f.InOutDirs(monthDir) {
			if !c.collect(ctx, dir) {
				return c.results, ctx.Err()
			}
		}
		if err := ctx.Err(); err != nil {
			return c.results, err
		}
	}
	return c.results, nil
}

type collector struct {
	finder  *Finder
	match   glob.Glob
	limit   int
	results []Result
}

// collect walks root depth-first and appends matching files. It reports
// whether the search should go on: false once the limit is hit or ctx is done.
func (c *collector) collect(ctx context.Context, root string) bool {
	stack := []string{root}
	for len(stack) > 0 {
		if ctx.Err() != nil {
			return false
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := c.finder.readDir(dir)
		if err != nil {
			c.finder.skip(dir, err)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !c.match.Match(entry.Name()) {
				continue
			}
			result, ok := c.finder.result(filepath.Join(dir, entry.Name()), entry)
			if !ok {
				continue
			}
			c.results = append(c.results, result)
			if len(c.results) >= c.limit {
				return false
			}
		}

		stack = append(stack, childDirs(dir, entries)...)
	}
	return true
}

// result builds the Result for a matched entry. Only regular files count; a
// symlink is accepted when it resolves to a regular file inside the base.
func (f *Finder) result(path string, entry os.DirEntry) (Result, bool) {
	var (
		info os.FileInfo
		err  error
	)
	switch {
	case entry.Type().IsRegular():
		info, err = entry.Info()
	case entry.Type()&os.ModeSymlink != 0:
		var target string
		target, err = filepath.EvalSymlinks(path)
		if err == nil && !f.contains(target) {
			return Result{}, false
		}
		if err == nil {
			info, err = os.Stat(target)
		}
	default:
		return Result{}, false
	}
	if err != nil {
		f.log.Debug("skipping entry", logger.String("path", path), logger.Error(err))
		return Result{}, false
	}
	if !info.Mode().IsRegular() {
		return Result{}, false
	}

	rel, err := f.relative(path)
	if err != nil {
		return Result{}, false
	}
	return Result{
		Name:     entry.Name(),
		Path:     rel,
		Size:     info.Size(),
		Modified: times.Get(info).ModTime().Local().Format(modifiedLayout),
	}, true
}
