package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "partyline"
)

var (
	upstreamDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30}

	// Upstream proxy metrics
	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Time taken for a party API upstream call to complete.",
		Buckets:   upstreamDurationBuckets,
	}, []string{"resource", "method"})

	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Count of party API upstream calls.",
	}, []string{"resource", "method", "status"})

	// Authorization metrics
	ProxyDenialsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proxy_denials_total",
		Help:      "Count of mutate attempts rejected by the proxy-side permission pre-check.",
	}, []string{"resource"})

	// List cache metrics
	ListCacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_cache_hits_total",
		Help:      "Count of list responses served from the in-process cache.",
	}, []string{"resource"})
)
