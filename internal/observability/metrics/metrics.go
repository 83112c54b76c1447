package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "projection_"

	resultSuccess   = "success"
	resultError     = "error"
	resultNoPayback = "no_payback"
)

var (
	registerOnce sync.Once

	computeTotal   *prometheus.CounterVec
	computeLatency *prometheus.HistogramVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	referenceLoadTotal *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
)

// Init registers projection metrics. db may be nil when no audit database is configured.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		computeTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "compute_total",
				Help: "Total projection computations by result",
			},
			[]string{"result"},
		)
		computeLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "compute_latency_seconds",
				Help:    "Projection compute latency in seconds",
				Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
			},
			[]string{"result"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		referenceLoadTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reference_load_total",
				Help: "Reference data loads by source and result",
			},
			[]string{"source", "result"},
		)

		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "HTTP requests by method and status code",
			},
			[]string{"method", "code"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_latency_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		)

		prometheus.MustRegister(
			computeTotal,
			computeLatency,
			exportTotal,
			exportLatency,
			referenceLoadTotal,
			httpRequests,
			httpLatency,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveProjection records a projection computation.
func ObserveProjection(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if computeTotal != nil {
		computeTotal.WithLabelValues(result).Inc()
	}
	if computeLatency != nil {
		computeLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveExport records report export latency and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncReferenceLoad counts a reference data load.
func IncReferenceLoad(source, result string) {
	if source == "" {
		source = "builtin"
	}
	if result == "" {
		result = resultSuccess
	}
	if referenceLoadTotal != nil {
		referenceLoadTotal.WithLabelValues(source, result).Inc()
	}
}

// ObserveHTTP records a served request.
func ObserveHTTP(method string, status int, duration time.Duration) {
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, statusCode(status)).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method).Observe(duration.Seconds())
	}
}

func statusCode(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// Exported constants for callers.
const (
	ResultSuccess   = resultSuccess
	ResultError     = resultError
	ResultNoPayback = resultNoPayback
)
