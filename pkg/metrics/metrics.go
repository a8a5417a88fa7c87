package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SearchQueries = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "soulbrew", Name: "search_queries_total", Help: "Number of executed search queries."},
	)
	SearchFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "soulbrew", Name: "search_fallback_total", Help: "Number of searches served by the substring fallback."},
	)
	IndexRebuilds = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "soulbrew", Name: "search_index_rebuilds_total", Help: "Number of full search index rebuilds."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "soulbrew", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "soulbrew", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(SearchQueries)
	reg.MustRegister(SearchFallbacks)
	reg.MustRegister(IndexRebuilds)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
