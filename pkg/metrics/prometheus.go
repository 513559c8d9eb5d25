// Package metrics provides Prometheus metrics for the courtside frame service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	latencyBuckets   []float64
	registry         prometheus.Registerer

	// Pipeline
	framesProcessed    prometheus.Counter
	framesDropped      prometheus.Counter
	framesStale        prometheus.Counter
	frameLatency       prometheus.Histogram
	detectionsSkipped  prometheus.Counter
	degradedFrames     prometheus.Counter
	attemptsStarted    prometheus.Counter
	shotsMade          prometheus.Counter
	activeSessions     prometheus.Gauge
	sessionsCompleted  prometheus.Counter
	frameQueueCapacity prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "courtside",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		// Frame work is sub-millisecond; buckets are in milliseconds.
		latencyBuckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 33},
		registry:       prometheus.DefaultRegisterer,
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

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.framesProcessed = m.counter("frames_processed_total", "Frames run through the pipeline")
	m.framesDropped = m.counter("frames_dropped_total", "Frames dropped because the session worker was busy")
	m.framesStale = m.counter("frames_stale_total", "Frames rejected for a non-increasing frame index")
	m.detectionsSkipped = m.counter("detections_skipped_total", "Detections skipped as malformed or over the per-frame cap")
	m.degradedFrames = m.counter("degraded_frames_total", "Frames mapped with an unknown device orientation")
	m.attemptsStarted = m.counter("attempts_started_total", "AttemptStarted events emitted")
	m.shotsMade = m.counter("shots_made_total", "ShotMade events emitted")
	m.sessionsCompleted = m.counter("sessions_completed_total", "Capture sessions ended")
	m.activeSessions = m.gauge("active_sessions", "Capture sessions currently open")
	m.frameQueueCapacity = m.gauge("frame_queue_capacity", "Per-session frame queue capacity")

	m.frameLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frame_latency_milliseconds",
		Help:      "Time spent processing one frame in milliseconds",
		Buckets:   m.latencyBuckets,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_component_total",
		Help:      "Errors by component and type",
	}, []string{"component", "error_type"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "HTTP errors by endpoint, method and type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
}

// RecordFrameProcessed increments the processed frames counter.
func RecordFrameProcessed() { globalManager.framesProcessed.Inc() }

// RecordFrameLatency observes one frame's processing time.
func RecordFrameLatency(ms float64) { globalManager.frameLatency.Observe(ms) }

// RecordFrameDropped counts a frame rejected by a full session queue.
func RecordFrameDropped() { globalManager.framesDropped.Inc() }

// RecordFrameStale counts a frame rejected for ordering.
func RecordFrameStale() { globalManager.framesStale.Inc() }

// RecordDetectionsSkipped adds n skipped detections.
func RecordDetectionsSkipped(n int) {
	if n > 0 {
		globalManager.detectionsSkipped.Add(float64(n))
	}
}

// RecordDegradedFrame counts a frame with unknown orientation.
func RecordDegradedFrame() { globalManager.degradedFrames.Inc() }

// RecordAttempt counts an AttemptStarted event.
func RecordAttempt() { globalManager.attemptsStarted.Inc() }

// RecordShotMade counts a ShotMade event.
func RecordShotMade() { globalManager.shotsMade.Inc() }

// RecordSessionCompleted counts an ended session.
func RecordSessionCompleted() { globalManager.sessionsCompleted.Inc() }

// UpdateActiveSessions sets the open session gauge.
func UpdateActiveSessions(n int) { globalManager.activeSessions.Set(float64(n)) }

// UpdateFrameQueueCapacity sets the per-session queue capacity gauge.
func UpdateFrameQueueCapacity(n int) { globalManager.frameQueueCapacity.Set(float64(n)) }

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// RecordErrorByComponent counts an error raised inside a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint counts an HTTP error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) { globalManager.systemGoroutineCount.Set(float64(n)) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
