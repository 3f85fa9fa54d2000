// Package metrics provides Prometheus metrics for the careerdesk webhook.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Intent resolution outcomes.
const (
	OutcomeHandled = "handled"
	OutcomeUnknown = "unknown"
	OutcomePanic   = "panic"
)

// Search fetch outcomes.
const (
	SearchOK       = "ok"
	SearchEmpty    = "empty"
	SearchTimeout  = "timeout"
	SearchStatus   = "bad_status"
	SearchError    = "error"
	SearchThrottle = "throttled"
)

// defaultResultCountBuckets covers 0..5 listings.
var defaultResultCountBuckets = []float64{0, 1, 2, 3, 4, 5}

// Manager manages all Prometheus metrics for the webhook.
type Manager struct {
	namespace          string
	subsystem          string
	histogramBuckets   []float64
	resultCountBuckets []float64
	enabled            bool
	customLabels       map[string]string
	metricPrefix       string
	registry           prometheus.Registerer

	// Intent resolution
	intentsResolved *prometheus.CounterVec
	dispatchLatency *prometheus.HistogramVec
	handlerPanics   prometheus.Counter
	paramsDiscarded *prometheus.CounterVec
	fallbackReplies prometheus.Counter

	// Listings search
	searchFetches      *prometheus.CounterVec
	searchLatency      prometheus.Histogram
	searchResultCount  prometheus.Histogram
	searchFallbackUsed prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:          "careerdesk",
		subsystem:          "webhook",
		histogramBuckets:   prometheus.DefBuckets,
		resultCountBuckets: defaultResultCountBuckets,
		enabled:            true,
		customLabels:       make(map[string]string),
		registry:           prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix != "" {
		return m.metricPrefix + "_" + n
	}
	return n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	m.intentsResolved = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("intents_resolved_total"),
		Help:        "Intents resolved by the dispatcher, by intent and outcome",
		ConstLabels: constLabels,
	}, []string{"intent", "outcome"})

	m.dispatchLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("dispatch_duration_milliseconds"),
		Help:        "Time spent composing a reply, by intent",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	}, []string{"intent"})

	m.handlerPanics = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("handler_panics_total"),
		Help:        "Handler panics recovered and converted to the apology reply",
		ConstLabels: constLabels,
	})

	m.paramsDiscarded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("params_discarded_total"),
		Help:        "Slot parameters dropped because they failed the intent schema",
		ConstLabels: constLabels,
	}, []string{"intent", "param"})

	m.fallbackReplies = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("fallback_replies_total"),
		Help:        "Help replies sent for unrecognized intents",
		ConstLabels: constLabels,
	})

	m.searchFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("search_fetches_total"),
		Help:        "Listings page fetches by outcome",
		ConstLabels: constLabels,
	}, []string{"outcome"})

	m.searchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("search_fetch_duration_milliseconds"),
		Help:        "Listings page fetch latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	})

	m.searchResultCount = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("search_results"),
		Help:        "Listings extracted per search",
		Buckets:     m.resultCountBuckets,
		ConstLabels: constLabels,
	})

	m.searchFallbackUsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("search_fallback_extractions_total"),
		Help:        "Searches where the anchor-scan fallback produced the listings",
		ConstLabels: constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_requests_total"),
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_request_duration_milliseconds"),
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_memory_bytes"),
		Help:        "Heap bytes allocated",
		ConstLabels: constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_goroutines"),
		Help:        "Number of goroutines",
		ConstLabels: constLabels,
	})
}

// Manager methods. Each is a no-op when metrics are disabled.

// RecordIntent counts one resolution and its latency.
func (m *Manager) RecordIntent(intent, outcome string, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.intentsResolved.WithLabelValues(intent, outcome).Inc()
	m.dispatchLatency.WithLabelValues(intent).Observe(latencyMs)
	switch outcome {
	case OutcomePanic:
		m.handlerPanics.Inc()
	case OutcomeUnknown:
		m.fallbackReplies.Inc()
	}
}

// RecordParamDiscarded counts a slot dropped by schema validation.
func (m *Manager) RecordParamDiscarded(intent, param string) {
	if !m.enabled {
		return
	}
	m.paramsDiscarded.WithLabelValues(intent, param).Inc()
}

// RecordSearch counts one listings fetch.
func (m *Manager) RecordSearch(outcome string, latencyMs float64, results int, fallback bool) {
	if !m.enabled {
		return
	}
	m.searchFetches.WithLabelValues(outcome).Inc()
	m.searchLatency.Observe(latencyMs)
	m.searchResultCount.Observe(float64(results))
	if fallback {
		m.searchFallbackUsed.Inc()
	}
}

// RecordHTTPRequest counts a request and observes its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystem sets the system gauges.
func (m *Manager) UpdateSystem(memBytes uint64, goroutines int) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
}

// Package-level helpers backed by the global manager.

// RecordIntent records an intent resolution on the global manager.
func RecordIntent(intent, outcome string, latencyMs float64) {
	globalManager.RecordIntent(intent, outcome, latencyMs)
}

// RecordParamDiscarded records a discarded slot on the global manager.
func RecordParamDiscarded(intent, param string) {
	globalManager.RecordParamDiscarded(intent, param)
}

// RecordSearch records a listings fetch on the global manager.
func RecordSearch(outcome string, latencyMs float64, results int, fallback bool) {
	globalManager.RecordSearch(outcome, latencyMs, results, fallback)
}

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// UpdateSystem updates system gauges on the global manager.
func UpdateSystem(memBytes uint64, goroutines int) {
	globalManager.UpdateSystem(memBytes, goroutines)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
