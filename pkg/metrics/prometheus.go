// Package metrics provides Prometheus metrics for the olympstats service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Query metrics
	queriesTotal *prometheus.CounterVec
	queryErrors  *prometheus.CounterVec
	queryLatency *prometheus.HistogramVec

	// Dataset metrics
	datasetAthletes       prometheus.Gauge
	datasetCountries      prometheus.Gauge
	datasetEvents         prometheus.Gauge
	datasetParticipations prometheus.Gauge
	datasetMedalists      prometheus.Gauge
	datasetLoadDuration   prometheus.Histogram
	datasetLoadErrors     prometheus.Counter
	datasetLoadedAt       prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System metrics
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

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "olympstats",
		subsystem:        "stats",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500},
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// RefreshInterval returns how often gauges sampled by the caller should be
// refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// Enabled reports whether recording is active.
func (m *Manager) Enabled() bool { return m.enabled }

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.queriesTotal = auto.NewCounterVec(
		m.counterOpts("queries_total", "Total number of statistics queries served"),
		[]string{"query"},
	)
	m.queryErrors = auto.NewCounterVec(
		m.counterOpts("query_errors_total", "Total number of statistics queries that returned an error"),
		[]string{"query", "error_type"},
	)
	m.queryLatency = auto.NewHistogramVec(
		m.histogramOpts("query_latency_milliseconds", "Statistics query latency in milliseconds", m.histogramBuckets),
		[]string{"query"},
	)

	m.datasetAthletes = auto.NewGauge(m.gaugeOpts("dataset_athletes", "Number of athletes in the loaded dataset"))
	m.datasetCountries = auto.NewGauge(m.gaugeOpts("dataset_countries", "Number of countries in the loaded dataset"))
	m.datasetEvents = auto.NewGauge(m.gaugeOpts("dataset_events", "Number of event occurrences in the loaded dataset"))
	m.datasetParticipations = auto.NewGauge(m.gaugeOpts("dataset_participations", "Number of participations in the loaded dataset"))
	m.datasetMedalists = auto.NewGauge(m.gaugeOpts("dataset_medalists", "Number of athletes with at least one medal"))
	m.datasetLoadDuration = auto.NewHistogram(m.histogramOpts(
		"dataset_load_duration_milliseconds", "Dataset load duration in milliseconds",
		[]float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
	))
	m.datasetLoadErrors = auto.NewCounter(m.counterOpts("dataset_load_errors_total", "Total number of failed dataset loads"))
	m.datasetLoadedAt = auto.NewGauge(m.gaugeOpts("dataset_loaded_unix", "Unix timestamp of the last successful dataset load"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// RecordQuery counts a served query and observes its latency.
func RecordQuery(query string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.queriesTotal.WithLabelValues(query).Inc()
	globalManager.queryLatency.WithLabelValues(query).Observe(latencyMs)
}

// RecordQueryError counts a query that returned an error.
func RecordQueryError(query, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.queryErrors.WithLabelValues(query, errorType).Inc()
}

// DatasetSize carries the entity counts published after a load.
type DatasetSize struct {
	Athletes       int
	Countries      int
	Events         int
	Participations int
	Medalists      int
}

// UpdateDatasetSize publishes the entity counts of the loaded dataset.
func UpdateDatasetSize(s DatasetSize) {
	if !globalManager.enabled {
		return
	}
	globalManager.datasetAthletes.Set(float64(s.Athletes))
	globalManager.datasetCountries.Set(float64(s.Countries))
	globalManager.datasetEvents.Set(float64(s.Events))
	globalManager.datasetParticipations.Set(float64(s.Participations))
	globalManager.datasetMedalists.Set(float64(s.Medalists))
}

// RecordDatasetLoad observes a successful load and stamps its time.
func RecordDatasetLoad(durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.datasetLoadDuration.Observe(durationMs)
	globalManager.datasetLoadedAt.SetToCurrentTime()
}

// RecordDatasetLoadError counts a failed load.
func RecordDatasetLoadError() {
	if !globalManager.enabled {
		return
	}
	globalManager.datasetLoadErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// RefreshInterval returns the refresh interval of the global manager.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}

// Configure replaces the global manager with one built from opts on a fresh
// registry, so names and labels can come from configuration. It must run
// before the first metric is recorded or the registry is served.
func Configure(opts ...Option) *Manager {
	registry := prometheus.NewRegistry()
	m := NewManager(append(append([]Option(nil), opts...), WithPrometheusRegistry(registry))...)
	customRegistry, globalManager = registry, m
	return m
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
