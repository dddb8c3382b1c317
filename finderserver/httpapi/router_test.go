package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recfinder/recording-finder/finder"
	"github.com/recfinder/recording-finder/logger"
)

// newTestRouter builds a router over <tmp>/base holding files. The parent of
// base is returned too so tests can place files outside the base.
func newTestRouter(t *testing.T, opts Options, files ...string) (http.Handler, string) {
	t.Helper()
	root := t.TempDir()
	base := filepath.Join(root, "base")
	require.NoError(t, os.MkdirAll(base, 0755))
	for _, name := range files {
		path := filepath.Join(base, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("data:"+name), 0644))
	}

	f, err := finder.New(base)
	require.NoError(t, err)
	return NewRouter(f, opts), root
}

func do(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSearch(t *testing.T, rec *httptest.ResponseRecorder) searchResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Detail
}

func TestHealth(t *testing.T) {
	router, root := newTestRouter(t, Options{})

	rec := do(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	base, err := filepath.EvalSymlinks(filepath.Join(root, "base"))
	require.NoError(t, err)
	assert.Equal(t, base, resp.Base)
}

func TestSearch(t *testing.T) {
	router, _ := newTestRouter(t, Options{},
		"2025-01/site1/IN/call_5551234.wav",
		"2025-02/site1/OUT/call_5551234.wav",
		"2025-02/site1/OUT/call_777.wav",
	)

	t.Run("month", func(t *testing.T) {
		resp := decodeSearch(t, do(t, router, http.MethodGet, "/search?numero=5551234&month=2025-01", nil))
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "2025-01/site1/IN/call_5551234.wav", resp.Items[0].Path)
		assert.Equal(t, "call_5551234.wav", resp.Items[0].Name)
		assert.Equal(t, int64(len("data:2025-01/site1/IN/call_5551234.wav")), resp.Items[0].Size)
	})

	t.Run("date range", func(t *testing.T) {
		resp := decodeSearch(t, do(t, router, http.MethodGet, "/search?numero=5551234&start=2025-01-01&end=2025-02-28", nil))
		require.Equal(t, 2, resp.Count)
		assert.Equal(t, "2025-01/site1/IN/call_5551234.wav", resp.Items[0].Path)
		assert.Equal(t, "2025-02/site1/OUT/call_5551234.wav", resp.Items[1].Path)
	})

	t.Run("malformed range searches everything", func(t *testing.T) {
		resp := decodeSearch(t, do(t, router, http.MethodGet, "/search?numero=5551234&start=yesterday&end=today", nil))
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("limit", func(t *testing.T) {
		resp := decodeSearch(t, do(t, router, http.MethodGet, "/search?numero=5551234&limit=1", nil))
		assert.Equal(t, 1, resp.Count)
		assert.Len(t, resp.Items, 1)
	})

	t.Run("empty numero", func(t *testing.T) {
		resp := decodeSearch(t, do(t, router, http.MethodGet, "/search?numero=", nil))
		assert.Equal(t, 0, resp.Count)
		assert.NotNil(t, resp.Items)
	})

	t.Run("items is an empty array", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/search?numero=000", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"items":[]`)
	})
}

func TestSearchValidation(t *testing.T) {
	router, _ := newTestRouter(t, Options{})

	tests := []struct {
		name   string
		target string
		detail string
	}{
		{"missing numero", "/search", "numero is required"},
		{"bad month", "/search?numero=1&month=2025-1", "month must be YYYY-MM"},
		{"month with day", "/search?numero=1&month=2025-01-01", "month must be YYYY-MM"},
		{"limit zero", "/search?numero=1&limit=0", "limit must be an integer between 1 and 5000"},
		{"limit too large", "/search?numero=1&limit=5001", "limit must be an integer between 1 and 5000"},
		{"limit not a number", "/search?numero=1&limit=ten", "limit must be an integer between 1 and 5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodGet, tt.target, nil)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, tt.detail, detail(t, rec))
		})
	}
}

func TestDownload(t *testing.T) {
	router, root := newTestRouter(t, Options{}, "2025-01/IN/call_5551234.wav")
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("secret"), 0644))
	require.NoError(t, os.Symlink(filepath.Join(root, "secret.txt"), filepath.Join(root, "base", "2025-01", "IN", "escape.txt")))

	t.Run("ok", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/download?path=2025-01/IN/call_5551234.wav", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "data:2025-01/IN/call_5551234.wav", rec.Body.String())
		assert.Equal(t, "attachment; filename=call_5551234.wav", rec.Header().Get("Content-Disposition"))
		assert.NotEmpty(t, rec.Header().Get("Content-Type"))
	})

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"missing path", "/download", http.StatusUnprocessableEntity},
		{"traversal", "/download?path=../secret.txt", http.StatusBadRequest},
		{"deep traversal", "/download?path=../../etc/passwd", http.StatusBadRequest},
		{"symlink escape", "/download?path=2025-01/IN/escape.txt", http.StatusBadRequest},
		{"empty path", "/download?path=", http.StatusNotFound},
		{"missing file", "/download?path=2025-01/IN/nope.wav", http.StatusNotFound},
		{"directory", "/download?path=2025-01/IN", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, detail(t, rec))
		})
	}
}

func TestDownloadZip(t *testing.T) {
	router, root := newTestRouter(t, Options{}, "a/x.txt", "b/x.txt", "c/y.wav")
	require.NoError(t, os.WriteFile(filepath.Join(root, "outside.txt"), []byte("secret"), 0644))

	body := `{"paths": ["a/x.txt", "../outside.txt", "b/x.txt", "c/y.wav", "c/missing.wav"], "zip_name": "batch.zip"}`
	rec := do(t, router, http.MethodPost, "/download-zip", strings.NewReader(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=batch.zip", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get("Content-Length"))

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)

	var names []string
	contents := map[string]string{}
	for _, file := range zr.File {
		names = append(names, file.Name)
		rc, err := file.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		contents[file.Name] = string(data)
	}

	assert.Equal(t, []string{"x.txt", "x (2).txt", "y.wav"}, names)
	assert.Equal(t, "data:a/x.txt", contents["x.txt"])
	assert.Equal(t, "data:b/x.txt", contents["x (2).txt"])
}

func TestDownloadZipLogsEntries(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "finder.log")
	log, err := logger.New(logger.Config{Level: "debug", OutputPaths: []string{logPath}})
	require.NoError(t, err)

	router, _ := newTestRouter(t, Options{Logger: log}, "a/x.txt", "b/x.txt")

	body := `{"paths": ["a/x.txt", "b/x.txt", "../nope.txt"]}`
	rec := do(t, router, http.MethodPost, "/download-zip", strings.NewReader(body))
	require.Equal(t, http.StatusOK, rec.Code)
	log.Sync()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"archive built"`)
	assert.Contains(t, string(data), `"entries":["x.txt","x (2).txt"]`)
	assert.Contains(t, string(data), `"skipped":1`)
}

func TestDownloadZipDefaults(t *testing.T) {
	router, _ := newTestRouter(t, Options{}, "a/x.txt")

	t.Run("default name", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/download-zip", strings.NewReader(`{"paths": ["a/x.txt"]}`))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "attachment; filename=arquivos.zip", rec.Header().Get("Content-Disposition"))
	})

	t.Run("nothing valid still succeeds", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/download-zip", strings.NewReader(`{"paths": ["../../etc/passwd"]}`))
		require.Equal(t, http.StatusOK, rec.Code)

		zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
		require.NoError(t, err)
		assert.Empty(t, zr.File)
	})

	for name, body := range map[string]string{
		"empty paths":      `{"paths": []}`,
		"missing paths":    `{"zip_name": "a.zip"}`,
		"paths not a list": `{"paths": "a/x.txt"}`,
		"not json":         `paths=a/x.txt`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/download-zip", strings.NewReader(body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestIndex(t *testing.T) {
	static := t.TempDir()

	t.Run("missing page", func(t *testing.T) {
		router, _ := newTestRouter(t, Options{StaticDir: static})
		rec := do(t, router, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "<h1>UI not found</h1>", rec.Body.String())
	})

	t.Run("page present", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<html>finder</html>"), 0644))
		router, _ := newTestRouter(t, Options{StaticDir: static})
		rec := do(t, router, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "<html>finder</html>", rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	})
}

func TestMetrics(t *testing.T) {
	router, _ := newTestRouter(t, Options{}, "2025-01/IN/call_1.wav")

	decodeSearch(t, do(t, router, http.MethodGet, "/search?numero=1", nil))

	rec := do(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "finder_searches_total 1")
	assert.Contains(t, rec.Body.String(), "finder_search_results_count 1")
}

func TestRateLimit(t *testing.T) {
	router, _ := newTestRouter(t, Options{RateLimitRPS: 0.001, RateLimitBurst: 1})

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/health", nil).Code)

	rec := do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate limit exceeded", detail(t, rec))
}
