package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the gateway.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	storeDuration    *prometheus.HistogramVec
	cicoFlushes      *prometheus.CounterVec
	cicoCells        prometheus.Counter
	exportsTotal     *prometheus.CounterVec
	sseSubscribers   prometheus.Gauge
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pbis_upstream_request_duration_seconds",
		Help:    "Duration of calls to the PBIS API",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"endpoint", "outcome"})

	storeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "session_store_duration_seconds",
		Help:    "Latency of session store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op", "result"})

	cicoFlushes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cico_flushes_total",
		Help: "Debounced CICO batch flushes by outcome",
	}, []string{"outcome"})

	cicoCells := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cico_cells_flushed_total",
		Help: "CICO cells sent upstream in batch updates",
	})

	exportsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exports_generated_total",
		Help: "Generated export files by kind and format",
	}, []string{"kind", "format"})

	sseSubscribers := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "date_range_subscribers",
		Help: "Open date range event streams",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, upstreamDuration, storeDuration, cicoFlushes, cicoCells, exportsTotal, sseSubscribers, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		upstreamDuration: upstreamDuration,
		storeDuration:    storeDuration,
		cicoFlushes:      cicoFlushes,
		cicoCells:        cicoCells,
		exportsTotal:     exportsTotal,
		sseSubscribers:   sseSubscribers,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records inbound request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveUpstream records one PBIS API call. Status 0 means the request never
// got a response.
func (m *MetricsService) ObserveUpstream(endpoint string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(endpoint, upstreamOutcome(status)).Observe(duration.Seconds())
}

func upstreamOutcome(status int) string {
	switch {
	case status == 0:
		return "transport_error"
	case status == http.StatusNotFound:
		return "not_found"
	case status >= 500:
		return "server_error"
	case status >= 400:
		return "client_error"
	default:
		return "ok"
	}
}

// RecordStoreOperation tracks session store latency.
func (m *MetricsService) RecordStoreOperation(op string, hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.storeDuration.WithLabelValues(op, result).Observe(duration.Seconds())
}

// RecordCICOFlush counts a batch flush and, on success, the cells it carried.
func (m *MetricsService) RecordCICOFlush(ok bool, cells int) {
	if m == nil {
		return
	}
	if !ok {
		m.cicoFlushes.WithLabelValues("failed").Inc()
		return
	}
	m.cicoFlushes.WithLabelValues("saved").Inc()
	m.cicoCells.Add(float64(cells))
}

// RecordExport counts a generated export file.
func (m *MetricsService) RecordExport(kind, format string) {
	if m == nil {
		return
	}
	m.exportsTotal.WithLabelValues(kind, format).Inc()
}

// SubscriberDelta adjusts the open event stream gauge.
func (m *MetricsService) SubscriberDelta(delta int) {
	if m == nil {
		return
	}
	m.sseSubscribers.Add(float64(delta))
}
