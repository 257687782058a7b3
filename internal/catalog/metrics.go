package catalog

import "github.com/prometheus/client_golang/prometheus"

// Metrics
var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "onair_catalog_requests_total", Help: "Catalog requests by outcome"},
		[]string{"endpoint", "result"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "onair_catalog_request_duration_seconds",
			Help:    "Catalog request latency",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"endpoint"},
	)
	pageRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "onair_catalog_records", Help: "Records in the last page fetched"},
		[]string{"endpoint"},
	)
)

// RegisterMetrics adds the catalog collectors to the default registry.
func RegisterMetrics() {
	prometheus.MustRegister(requestsTotal, requestDuration, pageRecords)
}
