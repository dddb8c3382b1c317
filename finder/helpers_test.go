package finder

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files (relative, slash-separated) under dir.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, name := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("data:"+name), 0644))
	}
}

func newTestFinder(t *testing.T, base string, opts ...Option) *Finder {
	t.Helper()
	f, err := New(base, opts...)
	require.NoError(t, err)
	return f
}

// dirRecorder wraps os.ReadDir and remembers which directories were listed.
type dirRecorder struct {
	mu      sync.Mutex
	visited []string
	fail    map[string]error
}

func (r *dirRecorder) readDir(name string) ([]os.DirEntry, error) {
	r.mu.Lock()
	r.visited = append(r.visited, name)
	err := r.fail[name]
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return os.ReadDir(name)
}

func (r *dirRecorder) install(f *Finder) *dirRecorder {
	f.readDir = r.readDir
	return r
}

func resultPaths(results []Result) []string {
	paths := make([]string, 0, len(results))
	for _, r := range results {
		paths = append(paths, r.Path)
	}
	return paths
}
