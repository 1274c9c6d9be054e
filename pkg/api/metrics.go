package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	registerer prometheus.Registerer

	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Store operation metrics
	storeOperationsTotal   *prometheus.CounterVec
	storeOperationDuration *prometheus.HistogramVec
	formFields             prometheus.Gauge

	// API key authentication metrics
	authRequestsTotal *prometheus.CounterVec

	// Health check metrics
	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates all metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		registerer: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldsheet_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fieldsheet_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fieldsheet_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		storeOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldsheet_store_operations_total",
				Help: "Total number of calls to the table store",
			},
			[]string{"operation", "status"},
		),

		storeOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fieldsheet_store_operation_duration_seconds",
				Help:    "Table store call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		formFields: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "fieldsheet_form_fields",
				Help: "Number of form fields seen in the last successful read or write",
			},
		),

		authRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldsheet_auth_requests_total",
				Help: "Total number of authentication requests",
			},
			[]string{"status"},
		),

		healthChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldsheet_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}

	return m
}

// Handler serves the metrics exposition. It uses reg when reg is also a
// gatherer, which holds for both the default and custom registries.
func (m *Metrics) Handler() http.Handler {
	if g, ok := m.registerer.(prometheus.Gatherer); ok {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordStoreOperation records a table store call
func (m *Metrics) RecordStoreOperation(operation string, success bool, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}

	m.storeOperationsTotal.WithLabelValues(operation, status).Inc()
	m.storeOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetFormFields updates the form field count
func (m *Metrics) SetFormFields(n int) {
	m.formFields.Set(float64(n))
}

// RecordAuthRequest records an authentication request
func (m *Metrics) RecordAuthRequest(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.authRequestsTotal.WithLabelValues(status).Inc()
}

// RecordHealthCheck records a health check
func (m *Metrics) RecordHealthCheck(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.healthChecksTotal.WithLabelValues(status).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// InstrumentAuthMiddleware instruments the authentication middleware
func (m *Metrics) InstrumentAuthMiddleware(next func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next(h).ServeHTTP(rw, r)

			// missing and wrong keys both count as failures
			m.RecordAuthRequest(rw.statusCode != http.StatusUnauthorized)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
