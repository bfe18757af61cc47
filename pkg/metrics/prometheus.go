// Package metrics provides Prometheus metrics for the golfbet service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the golfbet service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Round lifecycle
	gamesCreated prometheus.Counter
	gamesDeleted prometheus.Counter
	gamesActive  prometheus.Gauge

	// Scoring and settlement
	holesSettled        *prometheus.CounterVec
	holesWithoutPayment *prometheus.CounterVec
	paymentsRecorded    prometheus.Counter
	paymentVolume       prometheus.Counter
	roundsSettled       prometheus.Counter
	settlementTransfers prometheus.Histogram
	settlementLatency   prometheus.Histogram

	// Domain events
	eventsPublished *prometheus.CounterVec
	eventsConsumed  *prometheus.CounterVec
	eventErrors     *prometheus.CounterVec
	eventDuplicates *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     prometheus.Counter

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
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
		namespace:        "golfbet",
		subsystem:        "wager",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	})
}

func (m *Manager) initializeMetrics() {
	m.gamesCreated = m.counter("games_created_total", "Total number of rounds created")
	m.gamesDeleted = m.counter("games_deleted_total", "Total number of rounds removed from the registry")
	m.gamesActive = m.gauge("games_active", "Number of rounds currently held in the registry")

	m.holesSettled = m.counterVec("holes_settled_total",
		"Total number of hole payment calculations by game mode", "mode")
	m.holesWithoutPayment = m.counterVec("holes_without_payment_total",
		"Hole calculations that produced no payment, by reason", "reason")
	m.paymentsRecorded = m.counter("payments_recorded_total", "Total number of hole payments recorded")
	m.paymentVolume = m.counter("payment_volume_total", "Sum of all hole payment amounts")
	m.roundsSettled = m.counter("rounds_settled_total", "Total number of round settlements computed")
	m.settlementTransfers = m.histogram("settlement_transfers",
		"Number of transfers left after netting a round",
		[]float64{0, 1, 2, 3, 5, 8, 13, 21, 34, 45})
	m.settlementLatency = m.histogram("settlement_latency_milliseconds",
		"Round settlement latency in milliseconds", m.histogramBuckets)

	m.eventsPublished = m.counterVec("events_published_total", "Domain events published by topic", "topic")
	m.eventsConsumed = m.counterVec("events_consumed_total", "Domain events consumed by topic", "topic")
	m.eventErrors = m.counterVec("event_errors_total", "Domain event publish or decode failures by topic", "topic")
	m.eventDuplicates = m.counterVec("event_duplicates_total", "Redelivered domain events skipped by topic", "topic")

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRateLimited = m.counter("http_rate_limited_total", "Requests rejected by the rate limiter")

	m.errorRateByComponent = m.counterVec("errors_by_component_total",
		"Total number of errors by component", "component", "error_type")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total",
		"Total number of errors by endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// RecordGameCreated increments the created rounds counter.
func RecordGameCreated() {
	globalManager.gamesCreated.Inc()
}

// RecordGameDeleted increments the deleted rounds counter.
func RecordGameDeleted() {
	globalManager.gamesDeleted.Inc()
}

// UpdateActiveGames sets the number of rounds in the registry.
func UpdateActiveGames(count int) {
	globalManager.gamesActive.Set(float64(count))
}

// RecordHoleSettled records one hole calculation and the payments it produced.
func RecordHoleSettled(mode string, payments int, volume float64) {
	globalManager.holesSettled.WithLabelValues(mode).Inc()
	if payments > 0 {
		globalManager.paymentsRecorded.Add(float64(payments))
	}
	if volume > 0 {
		globalManager.paymentVolume.Add(volume)
	}
}

// RecordHoleWithoutPayment counts a hole that settled to nothing. Reasons are
// "incomplete" (a score is missing) and "no_winner".
func RecordHoleWithoutPayment(reason string) {
	globalManager.holesWithoutPayment.WithLabelValues(reason).Inc()
}

// RecordRoundSettled records a round settlement.
func RecordRoundSettled(transfers int, latencyMs float64) {
	globalManager.roundsSettled.Inc()
	globalManager.settlementTransfers.Observe(float64(transfers))
	globalManager.settlementLatency.Observe(latencyMs)
}

// RecordEventPublished increments the published events counter for a topic.
func RecordEventPublished(topic string) {
	globalManager.eventsPublished.WithLabelValues(topic).Inc()
}

// RecordEventConsumed increments the consumed events counter for a topic.
func RecordEventConsumed(topic string) {
	globalManager.eventsConsumed.WithLabelValues(topic).Inc()
}

// RecordEventError increments the event error counter for a topic.
func RecordEventError(topic string) {
	globalManager.eventErrors.WithLabelValues(topic).Inc()
}

// RecordEventDuplicate increments the skipped duplicate events counter for a topic.
func RecordEventDuplicate(topic string) {
	globalManager.eventDuplicates.WithLabelValues(topic).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordRateLimited increments the rate limited requests counter.
func RecordRateLimited() {
	globalManager.httpRateLimited.Inc()
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
