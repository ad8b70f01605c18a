package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Hospital API client metrics
	APIRequests *prometheus.CounterVec
	APILatency  *prometheus.HistogramVec

	// Session store metrics
	SessionOperations *prometheus.CounterVec

	// Export metrics
	Exports    *prometheus.CounterVec
	ExportRows *prometheus.HistogramVec
}

// NewMetrics creates all application metrics and registers them with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		APIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api_client",
			Name:      "requests_total",
			Help:      "Total number of requests sent to the hospital API",
		}, []string{"resource", "operation", "outcome"}),
		APILatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api_client",
			Name:      "request_duration_seconds",
			Help:      "Duration of requests sent to the hospital API",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"resource", "operation"}),

		SessionOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "operations_total",
			Help:      "Total number of session store operations",
		}, []string{"backend", "operation", "status"}),

		Exports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "files_total",
			Help:      "Total number of exported files",
		}, []string{"entity", "format"}),
		ExportRows: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "rows",
			Help:      "Number of rows written per export",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 6),
		}, []string{"entity"}),
	}
}

// NewNop returns metrics registered on a private registry, for tests.
func NewNop() *Metrics {
	return NewMetrics("test", prometheus.NewRegistry())
}
