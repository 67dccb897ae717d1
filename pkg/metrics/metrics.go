// Package metrics holds the Prometheus registry wiring and the HTTP server
// metrics of the proxy. Library metrics are defined in their own packages
// (client, cache) and registered via promauto.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the proxy.
var Registry = prometheus.DefaultRegisterer

var (
	// HTTPRequests counts served requests by route and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placeholder_http_requests_total",
			Help: "Total HTTP requests served by route and status",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPDuration tracks request latency by route.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "placeholder_http_request_duration_seconds",
			Help:    "HTTP request duration by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// WarmupRuns counts cache warm-up runs by outcome.
	WarmupRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placeholder_warmup_runs_total",
			Help: "Cache warm-up runs by result (ok, error)",
		},
		[]string{"result"},
	)
)

// ObserveHTTP records one served request. An empty route (no match) is
// reported as "unmatched" to keep label cardinality bounded.
func ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveWarmup records the outcome of a warm-up run.
func ObserveWarmup(err error) {
	if err != nil {
		WarmupRuns.WithLabelValues("error").Inc()
		return
	}
	WarmupRuns.WithLabelValues("ok").Inc()
}

// Handler exposes the default gatherer in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - placeholder_cache_hits_total{layer} (Counter): Cache hits by store (memory, redis)
//   - placeholder_cache_misses_total{layer} (Counter): Misses, expired entries included
//   - placeholder_cache_size_bytes{layer} (Gauge): Size of the last stored entry
//   - placeholder_cache_errors_total{operation} (Counter): Store operation errors
//
// Upstream Metrics (pkg/client):
//   - placeholder_upstream_requests_total{endpoint, status} (Counter): Attempts by endpoint and status
//   - placeholder_upstream_request_duration_seconds{endpoint} (Histogram): Attempt duration
//   - placeholder_upstream_errors_total{class} (Counter): Errors by class (client, server, network)
//   - placeholder_upstream_retries_total (Counter): Retry attempts
//   - placeholder_upstream_retry_exhausted_total (Counter): Fetches that exhausted their retries
//
// Server Metrics (pkg/metrics):
//   - placeholder_http_requests_total{route, method, status} (Counter)
//   - placeholder_http_request_duration_seconds{route} (Histogram)
//   - placeholder_warmup_runs_total{result} (Counter)
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(placeholder_cache_hits_total[5m])) /
//   (sum(rate(placeholder_cache_hits_total[5m])) + sum(rate(placeholder_cache_misses_total[5m])))
//
//   # Upstream Error Rate
//   rate(placeholder_upstream_errors_total[5m])
//
//   # P95 API Latency
//   histogram_quantile(0.95, rate(placeholder_http_request_duration_seconds_bucket{route=~"/api/.*"}[5m]))
