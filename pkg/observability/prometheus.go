package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks implements PipelineHooks, CacheHooks, and HTTPHooks on top
// of prometheus collectors. Construct it once at startup, register it with
// the hook registry, and expose the registry via promhttp.
type PrometheusHooks struct {
	layoutDuration *prometheus.HistogramVec
	layoutItems    prometheus.Histogram
	degradedTotal  prometheus.Counter

	cacheOps *prometheus.CounterVec

	httpDuration *prometheus.HistogramVec
	httpTotal    *prometheus.CounterVec
}

// NewPrometheusHooks creates the collectors and registers them with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		layoutDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "cumulus",
				Name:      "layout_duration_seconds",
				Help:      "Layout computation duration in seconds",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"outcome"},
		),
		layoutItems: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "cumulus",
				Name:      "layout_items",
				Help:      "Number of items per layout computation",
				Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
			},
		),
		degradedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "cumulus",
				Name:      "layout_degraded_placements_total",
				Help:      "Total placements accepted after exhausting the attempt budget",
			},
		),
		cacheOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cumulus",
				Name:      "cache_operations_total",
				Help:      "Cache operations by key type and result",
			},
			[]string{"key_type", "result"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "cumulus",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "path", "status"},
		),
		httpTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cumulus",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}

	reg.MustRegister(
		h.layoutDuration, h.layoutItems, h.degradedTotal,
		h.cacheOps,
		h.httpDuration, h.httpTotal,
	)
	return h
}

// OnLoadStart is a no-op; load timing is covered by pipeline logging.
func (h *PrometheusHooks) OnLoadStart(context.Context, string) {}

// OnLoadComplete is a no-op; load timing is covered by pipeline logging.
func (h *PrometheusHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}

// OnLayoutStart records the input size.
func (h *PrometheusHooks) OnLayoutStart(_ context.Context, itemCount int) {
	h.layoutItems.Observe(float64(itemCount))
}

// OnLayoutComplete records duration and degraded placements.
func (h *PrometheusHooks) OnLayoutComplete(_ context.Context, _, degraded int, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	h.layoutDuration.WithLabelValues(outcome).Observe(d.Seconds())
	h.degradedTotal.Add(float64(degraded))
}

// OnCacheHit records a cache hit.
func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss records a cache miss.
func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet records a cache write.
func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.cacheOps.WithLabelValues(keyType, "set").Inc()
}

// OnRequest is a no-op; counting happens on response with the final status.
func (h *PrometheusHooks) OnRequest(context.Context, string, string) {}

// OnResponse records the request with its route pattern and status.
func (h *PrometheusHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	code := strconv.Itoa(status)
	h.httpDuration.WithLabelValues(method, path, code).Observe(d.Seconds())
	h.httpTotal.WithLabelValues(method, path, code).Inc()
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)
