package observability

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/kingbayo/internal/platform/envutil"
	"github.com/yungbote/kingbayo/internal/platform/logger"
)

// Metrics is nil-safe: every method is a no-op on a nil receiver so callers
// never need to check whether metrics are enabled.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	generations      *prometheus.CounterVec
	generationTime   *prometheus.HistogramVec
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	inflightRejected prometheus.Counter
	historyLength    prometheus.Gauge
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", true)
}

func Current() *Metrics {
	return instance
}

// Init builds the process-wide metrics set once. Returns nil when
// METRICS_ENABLED is false.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = New()
		if log != nil {
			log.Info("metrics initialized")
		}
	})
	return instance
}

// New builds a metrics set on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kb_api_requests_total",
			Help: "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kb_api_request_duration_seconds",
			Help:    "API request latency in seconds by method/route/status.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kb_api_inflight_requests",
			Help: "In-flight API requests.",
		}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kb_generations_total",
			Help: "Completed ticket generations by source and fallback reason.",
		}, []string{"source", "reason"}),
		generationTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kb_generation_duration_seconds",
			Help:    "End-to-end ticket generation latency by source.",
			Buckets: []float64{0.005, 0.05, 0.25, 1, 2.5, 5, 10, 30, 60},
		}, []string{"source"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kb_upstream_requests_total",
			Help: "Upstream text-generation calls by model/status.",
		}, []string{"model", "status"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kb_upstream_request_duration_seconds",
			Help:    "Upstream text-generation latency by model/status.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 45, 90},
		}, []string{"model", "status"}),
		inflightRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kb_generation_inflight_rejected_total",
			Help: "Generation triggers rejected because another generation was in flight.",
		}),
		historyLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kb_history_length",
			Help: "Tickets currently held in the session history log.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.generations,
		m.generationTime,
		m.upstreamRequests,
		m.upstreamLatency,
		m.inflightRejected,
		m.historyLength,
	)
	return m
}

// Handler serves the registry in Prometheus text format. A nil Metrics
// serves 404 so the route can stay mounted.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveGeneration records one completed generation. reason is empty when
// the first producer succeeded.
func (m *Metrics) ObserveGeneration(source, reason string, dur time.Duration) {
	if m == nil {
		return
	}
	source = strings.TrimSpace(source)
	if source == "" {
		source = "unknown"
	}
	if reason == "" {
		reason = "none"
	}
	m.generations.WithLabelValues(source, reason).Inc()
	if dur > 0 {
		m.generationTime.WithLabelValues(source).Observe(dur.Seconds())
	}
}

func (m *Metrics) ObserveUpstream(model, status string, dur time.Duration) {
	if m == nil {
		return
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.upstreamRequests.WithLabelValues(model, status).Inc()
	if dur > 0 {
		m.upstreamLatency.WithLabelValues(model, status).Observe(dur.Seconds())
	}
}

func (m *Metrics) IncInflightRejected() {
	if m == nil {
		return
	}
	m.inflightRejected.Inc()
}

func (m *Metrics) SetHistoryLength(n int) {
	if m == nil {
		return
	}
	m.historyLength.Set(float64(n))
}

// StatusLabel renders an HTTP status code for metric labels.
func StatusLabel(code int) string {
	if code <= 0 {
		return "0"
	}
	return strconv.Itoa(code)
}
