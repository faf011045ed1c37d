package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/ssargent/flashkit/pkg/inspect"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Codec metrics
	recordsDecodedTotal *prometheus.CounterVec
	recordsSkippedTotal *prometheus.CounterVec
	decodeErrorsTotal   *prometheus.CounterVec
	decodeDuration      *prometheus.HistogramVec

	// Asset store metrics
	assetOperationsTotal *prometheus.CounterVec

	// API key authentication metrics
	authRequestsTotal *prometheus.CounterVec
}

// NewMetrics creates all Prometheus metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flashkit_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flashkit_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flashkit_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		recordsDecodedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flashkit_records_decoded_total",
				Help: "Total number of records decoded by container kind and record name",
			},
			[]string{"kind", "record"},
		),

		recordsSkippedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flashkit_records_skipped_total",
				Help: "Total number of records of unknown type stepped over during decoding",
			},
			[]string{"kind"},
		),

		decodeErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flashkit_decode_errors_total",
				Help: "Total number of containers that failed to decode",
			},
			[]string{"kind", "class"},
		),

		decodeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flashkit_decode_duration_seconds",
				Help:    "Container decode duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),

		assetOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flashkit_asset_operations_total",
				Help: "Total number of asset store operations",
			},
			[]string{"operation", "status"},
		),

		authRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flashkit_auth_requests_total",
				Help: "Total number of authentication requests",
			},
			[]string{"status"},
		),
	}
}

func status(success bool) string {
	if success {
		return statusSuccess
	}
	return statusError
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordReport records the records of a successfully decoded container
func (m *Metrics) RecordReport(r *inspect.Report, duration time.Duration) {
	kind := string(r.Kind)
	for name, n := range r.Counts() {
		m.recordsDecodedTotal.WithLabelValues(kind, name).Add(float64(n))
	}
	if len(r.Skipped) > 0 {
		m.recordsSkippedTotal.WithLabelValues(kind).Add(float64(len(r.Skipped)))
	}
	m.decodeDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordDecodeError records a container that failed to decode
func (m *Metrics) RecordDecodeError(kind inspect.Kind, class string) {
	m.decodeErrorsTotal.WithLabelValues(string(kind), class).Inc()
}

// RecordAssetOperation records an asset store operation
func (m *Metrics) RecordAssetOperation(operation string, success bool) {
	m.assetOperationsTotal.WithLabelValues(operation, status(success)).Inc()
}

// RecordAuthRequest records an authentication request
func (m *Metrics) RecordAuthRequest(success bool) {
	m.authRequestsTotal.WithLabelValues(status(success)).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		// capture the status code
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// InstrumentAuthMiddleware instruments the authentication middleware
func (m *Metrics) InstrumentAuthMiddleware(next func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasAPIKey := r.Header.Get("X-API-Key") != ""

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next(h).ServeHTTP(rw, r)

			if hasAPIKey {
				m.RecordAuthRequest(rw.statusCode != http.StatusUnauthorized)
			}
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
