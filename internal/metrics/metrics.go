// Package metrics provides Prometheus metrics for the subway board.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Feed fetch outcomes used as the "result" label.
const (
	FeedResultOK          = "ok"
	FeedResultHTTPError   = "http_error"
	FeedResultDecodeError = "decode_error"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Registry is private to this instance so tests can build many of them.
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	FeedFetchesTotal  *prometheus.CounterVec
	FeedFetchDuration *prometheus.HistogramVec
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subwayboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "subwayboard_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	feedFetchesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subwayboard_feed_fetches_total",
			Help: "GTFS-Realtime feed fetches by source and outcome",
		},
		[]string{"source", "result"},
	)

	feedFetchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "subwayboard_feed_fetch_duration_seconds",
			Help:    "Time spent downloading and decoding a GTFS-Realtime feed",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		feedFetchesTotal,
		feedFetchDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		Registry:            registry,
		HTTPRequestsTotal:   httpRequestsTotal,
		HTTPRequestDuration: httpRequestDuration,
		FeedFetchesTotal:    feedFetchesTotal,
		FeedFetchDuration:   feedFetchDuration,
	}
}

// ObserveFeedFetch records one fetch attempt. Safe to call on a nil receiver.
func (m *Metrics) ObserveFeedFetch(source, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.FeedFetchesTotal.WithLabelValues(source, result).Inc()
	m.FeedFetchDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
