package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"acdata/internal/config"
)

var (
	LookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ac_lookups_total",
			Help: "Technical data lookups by outcome",
		},
		[]string{"outcome"},
	)

	ExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ac_extractions_total",
			Help: "Extractions by the path that produced the result",
		},
		[]string{"path"},
	)

	ManualEntriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ac_manual_entries_total",
			Help: "Technical data validated through the manual form",
		},
	)

	CrawledProductsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ac_crawled_products_total",
			Help: "Catalog products processed by the crawler",
		},
		[]string{"status"},
	)

	LLMRequestSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ac_llm_request_seconds",
			Help:    "Latency of language model calls",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
	)
)

// Lookup outcomes.
const (
	OutcomeCached       = "cached"
	OutcomeComplete     = "complete"
	OutcomePartial      = "partial"
	OutcomeError        = "error"
	OutcomeUnconfigured = "unconfigured"
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			LookupsTotal,
			ExtractionsTotal,
			ManualEntriesTotal,
			CrawledProductsTotal,
			LLMRequestSeconds,
		)
	})
}

// Start serves /metrics on its own port.
func Start(port string) {
	Register()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			l := config.ComponentLogger("metrics")
			l.Error().Err(err).Str("port", port).Msg("metrics server stopped")
		}
	}()
}
