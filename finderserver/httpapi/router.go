// Package httpapi exposes the Finder over HTTP: search, single download, zip
// batch download, a health probe, prometheus metrics and the static UI page.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/recfinder/recording-finder/finder"
	"github.com/recfinder/recording-finder/logger"
)

// Options configures the router. The zero value serves without a rate
// limiter, logs nowhere and registers metrics on a private registry.
type Options struct {
	// StaticDir holds index.html for GET /.
	StaticDir string
	// RateLimitRPS is the sustained request rate; 0 disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int

	Logger   logger.Logger
	Registry *prometheus.Registry
}

// Handler serves the HTTP surface over a Finder.
type Handler struct {
	finder    *finder.Finder
	staticDir string
	log       logger.Logger
	validate  *validator.Validate
	metrics   *metrics
}

// NewRouter builds the chi router with middleware and every route mounted.
func NewRouter(f *finder.Finder, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	h := &Handler{
		finder:    f,
		staticDir: opts.StaticDir,
		log:       log,
		validate:  validator.New(),
		metrics:   newMetrics(reg),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(recoverer(log))
	if opts.RateLimitRPS > 0 {
		r.Use(newRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst, log).Handler)
	}

	r.Get("/", h.Index)
	r.Get("/health", h.Health)
	r.Get("/search", h.Search)
	r.Get("/download", h.Download)
	r.Post("/download-zip", h.DownloadZip)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return r
}
