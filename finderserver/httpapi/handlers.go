package httpapi

import (
	"errors"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/render"

	"github.com/recfinder/recording-finder/finder"
	"github.com/recfinder/recording-finder/logger"
)

type healthResponse struct {
	Status string `json:"status"`
	Base   string `json:"base"`
}

type searchResponse struct {
	Count int             `json:"count"`
	Items []finder.Result `json:"items"`
}

type zipRequest struct {
	Paths   []string `json:"paths" validate:"required,min=1"`
	ZipName string   `json:"zip_name"`
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, healthResponse{Status: "ok", Base: h.finder.Base()})
}

// Search handles GET /search?numero=&month=&start=&end=&limit=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("numero") {
		writeError(w, r, http.StatusUnprocessableEntity, "numero is required")
		return
	}

	month := q.Get("month")
	if month != "" && !finder.ValidMonth(month) {
		writeError(w, r, http.StatusUnprocessableEntity, "month must be YYYY-MM")
		return
	}

	limit := h.finder.DefaultLimit()
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > finder.MAX_LIMIT {
			writeError(w, r, http.StatusUnprocessableEntity, "limit must be an integer between 1 and "+strconv.Itoa(finder.MAX_LIMIT))
			return
		}
		limit = n
	}

	results, err := h.finder.Search(r.Context(), finder.Query{
		Numero: q.Get("numero"),
		Month:  month,
		Start:  q.Get("start"),
		End:    q.Get("end"),
		Limit:  limit,
	})
	if err != nil {
		// Only cancellation gets here; the client is gone.
		h.log.Debug("search cancelled", logger.Error(err))
		return
	}

	h.metrics.searches.Inc()
	h.metrics.searchResults.Observe(float64(len(results)))
	render.JSON(w, r, searchResponse{Count: len(results), Items: results})
}

// Download handles GET /download?path=.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("path") {
		writeError(w, r, http.StatusUnprocessableEntity, "path is required")
		return
	}

	// An empty path names the base directory and ends up as not found.
	rel := q.Get("path")
	full, err := h.finder.Resolve(rel)
	switch {
	case errors.Is(err, finder.ErrInvalidPath):
		h.metrics.downloads.WithLabelValues("single", "invalid").Inc()
		writeError(w, r, http.StatusBadRequest, "invalid path")
		return
	case err != nil:
		h.metrics.downloads.WithLabelValues("single", "not_found").Inc()
		writeError(w, r, http.StatusNotFound, "file not found")
		return
	}

	file, err := os.Open(full)
	if err != nil {
		h.metrics.downloads.WithLabelValues("single", "not_found").Inc()
		writeError(w, r, http.StatusNotFound, "file not found")
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to read file")
		return
	}

	w.Header().Set("Content-Type", finder.DetectMIME(full))
	w.Header().Set("Content-Disposition", attachment(filepath.Base(full)))
	h.metrics.downloads.WithLabelValues("single", "ok").Inc()
	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
}

// DownloadZip handles POST /download-zip with a JSON body {paths, zip_name}.
func (h *Handler) DownloadZip(w http.ResponseWriter, r *http.Request) {
	var req zipRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, "'paths' is required and must be a non-empty list")
		return
	}

	name := req.ZipName
	if name == "" {
		name = finder.DEFAULT_ZIP_NAME
	}

	archive, err := h.finder.BuildArchive(r.Context(), req.Paths)
	if err != nil {
		h.log.Error("failed to build archive", logger.Error(err), logger.Int("paths", len(req.Paths)))
		h.metrics.downloads.WithLabelValues("zip", "error").Inc()
		writeError(w, r, http.StatusInternalServerError, "failed to build archive")
		return
	}
	defer archive.Close()

	h.log.Debug("archive built",
		logger.String("zip_name", name),
		logger.Strings("entries", archive.Entries),
		logger.Int("skipped", archive.Skipped),
		logger.Int64("size", archive.Size()),
	)
	h.metrics.downloads.WithLabelValues("zip", "ok").Inc()
	h.metrics.zipEntries.WithLabelValues("added").Add(float64(len(archive.Entries)))
	h.metrics.zipEntries.WithLabelValues("skipped").Add(float64(archive.Skipped))

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", attachment(name))
	w.Header().Set("Content-Length", strconv.FormatInt(archive.Size(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := archive.WriteTo(w); err != nil {
		h.log.Warn("zip stream interrupted", logger.String("zip_name", name), logger.Error(err))
	}
}

// Index handles GET / with the static UI entry page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := os.ReadFile(filepath.Join(h.staticDir, "index.html"))
	if err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<h1>UI not found</h1>"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// attachment builds a Content-Disposition value, RFC 2231 encoding the
// filename when it is not plain ASCII.
func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
