package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for one server instance. Each instance owns its
// registry so tests and multiple servers never collide.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ParsesTotal         *prometheus.CounterVec
	ParseDiagnostics    prometheus.Counter
	LLMFallbacksTotal   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "specdraw_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "specdraw_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	m.ParsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "specdraw_parses_total",
			Help: "Specifications parsed, by the path that produced them",
		},
		[]string{"source"},
	)
	m.ParseDiagnostics = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "specdraw_parse_diagnostics_total",
			Help: "Diagnostics reported while parsing",
		},
	)
	m.LLMFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "specdraw_llm_fallbacks_total",
			Help: "Times a generator fell back from the LLM to the built-in renderer",
		},
		[]string{"operation"},
	)

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ParsesTotal,
		m.ParseDiagnostics,
		m.LLMFallbacksTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one finished HTTP request. route should be the
// matched pattern, not the raw path.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveParse records a parse and its diagnostic count.
func (m *Metrics) ObserveParse(source string, diagnostics int) {
	m.ParsesTotal.WithLabelValues(source).Inc()
	m.ParseDiagnostics.Add(float64(diagnostics))
}

// Handler serves this instance's registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
