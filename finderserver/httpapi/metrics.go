package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	searches      prometheus.Counter
	searchResults prometheus.Histogram
	downloads     *prometheus.CounterVec
	zipEntries    *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		searches: factory.NewCounter(prometheus.CounterOpts{
			Name: "finder_searches_total",
			Help: "Number of searches served.",
		}),
		searchResults: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "finder_search_results",
			Help:    "Number of results returned per search.",
			Buckets: []float64{0, 1, 5, 10, 50, 200, 1000, 5000},
		}),
		downloads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finder_downloads_total",
			Help: "Single and zip downloads by outcome.",
		}, []string{"kind", "outcome"}),
		zipEntries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finder_zip_entries_total",
			Help: "Zip batch entries by outcome.",
		}, []string{"outcome"}),
	}
}
