package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinedex",
			Name:      "search_requests_total",
			Help:      "Search requests by resolution mode",
		},
		[]string{"mode"}, // "vector" / "text_fallback" / "browse"
	)

	SearchResultCount = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cinedex",
			Name:      "search_result_count",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"mode"},
	)

	IntentClassifyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinedex",
			Name:      "intent_classify_total",
			Help:      "Query intent classifications by source",
		},
		[]string{"source"}, // "llm" / "fallback"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchResultCount)
	prometheus.MustRegister(IntentClassifyTotal)
	searchMetricsRegistered = true
}
