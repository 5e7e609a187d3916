package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business Metrics
	PaymentsCreated     prometheus.Counter
	StatusUpdatesTotal  *prometheus.CounterVec
	ListRetrievalsTotal *prometheus.CounterVec

	// Database Metrics
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge
	DBQueryDuration    *prometheus.HistogramVec
	DBQueriesTotal     *prometheus.CounterVec
	DBConnectionErrors prometheus.Counter

	// System Metrics
	ServiceUptime    prometheus.Gauge
	ServiceVersion   *prometheus.GaugeVec
	Goroutines       prometheus.Gauge
	MemoryUsageBytes *prometheus.GaugeVec

	// Validation Metrics
	ValidationErrors   *prometheus.CounterVec
	ValidationDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymentledger_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paymentledger_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "paymentledger_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),

		PaymentsCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "paymentledger_payments_created_total",
				Help: "Total number of payment submissions stored",
			},
		),
		StatusUpdatesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymentledger_status_updates_total",
				Help: "Total number of successful status updates",
			},
			[]string{"status"},
		),
		ListRetrievalsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymentledger_list_retrievals_total",
				Help: "Total number of payment list retrievals",
			},
			[]string{"status"},
		),

		DBConnectionsInUse: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "paymentledger_db_connections_in_use",
				Help: "Number of database connections currently in use",
			},
		),
		DBConnectionsIdle: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "paymentledger_db_connections_idle",
				Help: "Number of idle database connections",
			},
		),
		DBQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paymentledger_db_query_duration_seconds",
				Help:    "Duration of database queries in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"operation", "table"},
		),
		DBQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymentledger_db_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation", "table", "status"},
		),
		DBConnectionErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "paymentledger_db_connection_errors_total",
				Help: "Total number of database connection errors",
			},
		),

		ServiceUptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "paymentledger_service_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
		ServiceVersion: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "paymentledger_service_version_info",
				Help: "Service version information (labels: version, commit, build_date)",
			},
			[]string{"version", "commit", "build_date"},
		),
		Goroutines: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "paymentledger_goroutines",
				Help: "Number of goroutines currently running",
			},
		),
		MemoryUsageBytes: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "paymentledger_memory_usage_bytes",
				Help: "Memory usage in bytes",
			},
			[]string{"type"},
		),

		ValidationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymentledger_validation_errors_total",
				Help: "Total number of validation errors",
			},
			[]string{"field", "tag"},
		),
		ValidationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paymentledger_validation_duration_seconds",
				Help:    "Duration of validation operations in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"endpoint"},
		),
	}
}

// --- Recording Methods ---

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
}

func (m *Metrics) RecordPaymentCreated() {
	m.PaymentsCreated.Inc()
}

func (m *Metrics) RecordStatusUpdate(status string) {
	m.StatusUpdatesTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordListRetrieval(status string) {
	m.ListRetrievalsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordDBQuery(operation, table, status string, duration time.Duration) {
	m.DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

func (m *Metrics) RecordDBConnectionError() {
	m.DBConnectionErrors.Inc()
}

func (m *Metrics) RecordValidationError(field, tag string) {
	m.ValidationErrors.WithLabelValues(field, tag).Inc()
}

func (m *Metrics) RecordValidationDuration(endpoint string, duration time.Duration) {
	m.ValidationDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// UpdateSystemMetrics updates system-level metrics (goroutines, uptime, memory).
func (m *Metrics) UpdateSystemMetrics(uptime time.Duration, memStats *runtime.MemStats) {
	m.ServiceUptime.Set(uptime.Seconds())
	m.Goroutines.Set(float64(runtime.NumGoroutine()))

	m.MemoryUsageBytes.WithLabelValues("alloc").Set(float64(memStats.Alloc))
	m.MemoryUsageBytes.WithLabelValues("sys").Set(float64(memStats.Sys))
	m.MemoryUsageBytes.WithLabelValues("heap_alloc").Set(float64(memStats.HeapAlloc))
	m.MemoryUsageBytes.WithLabelValues("heap_sys").Set(float64(memStats.HeapSys))
}

// SetServiceVersion sets the service version information (only once per start).
func (m *Metrics) SetServiceVersion(version, commit, buildDate string) {
	m.ServiceVersion.WithLabelValues(version, commit, buildDate).Set(1)
}
