package handler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/recfinder/recording-finder/finder"
	"github.com/stretchr/testify/require"
)

// newTestHandler builds a handler over a fresh base directory holding files.
func newTestHandler(t *testing.T, files ...string) (*RecordingHandler, string) {
	t.Helper()
	base := t.TempDir()
	for _, name := range files {
		path := filepath.Join(base, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("content of "+name), 0644))
	}

	f, err := finder.New(base, finder.WithDefaultLimit(2))
	require.NoError(t, err)
	return NewRecordingHandler(f), f.Base()
}
