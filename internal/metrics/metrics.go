// Package metrics defines the Prometheus collectors of the API server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics names as constants for consistency.
const (
	MetricResolutionsTotal    = "hotspot_resolutions_total"
	MetricSkippedRecordsTotal = "proximity_skipped_records_total"
	MetricRankedResults       = "proximity_ranked_results"
	MetricDatasetReloadsTotal = "dataset_reloads_total"
	MetricDatasetHospitals    = "dataset_hospitals"
	MetricHTTPRequestDuration = "http_request_duration_seconds"
	MetricRateLimitBlocked    = "rate_limit_blocked_total"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	resolutions      *prometheus.CounterVec
	skippedRecords   prometheus.Counter
	rankedResults    prometheus.Histogram
	datasetReloads   *prometheus.CounterVec
	datasetHospitals prometheus.Gauge
	httpDuration     *prometheus.HistogramVec
	rateLimitBlocked prometheus.Counter
}

// NewMetrics creates the collectors without registering them.
func NewMetrics() *Metrics {
	return &Metrics{
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricResolutionsTotal,
				Help: "Location resolutions by match strategy (none = unresolved)",
			},
			[]string{"strategy"},
		),
		skippedRecords: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricSkippedRecordsTotal,
				Help: "Hospital records skipped during ranking because of unusable coordinates",
			},
		),
		rankedResults: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricRankedResults,
				Help:    "Number of hospitals returned per proximity query",
				Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
			},
		),
		datasetReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricDatasetReloadsTotal,
				Help: "Dataset reload attempts by status",
			},
			[]string{"status"},
		),
		datasetHospitals: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: MetricDatasetHospitals,
				Help: "Hospitals in the current dataset snapshot",
			},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricHTTPRequestDuration,
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		rateLimitBlocked: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricRateLimitBlocked,
				Help: "Requests rejected by the global rate limiter",
			},
		),
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.resolutions,
		m.skippedRecords,
		m.rankedResults,
		m.datasetReloads,
		m.datasetHospitals,
		m.httpDuration,
		m.rateLimitBlocked,
	}
}

func (m *Metrics) IncResolution(strategy string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(strategy).Inc()
}

func (m *Metrics) AddSkippedRecords(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.skippedRecords.Add(float64(n))
}

func (m *Metrics) ObserveRankedResults(n int) {
	if m == nil {
		return
	}
	m.rankedResults.Observe(float64(n))
}

func (m *Metrics) IncDatasetReload(status string) {
	if m == nil {
		return
	}
	m.datasetReloads.WithLabelValues(status).Inc()
}

func (m *Metrics) SetDatasetSize(n int) {
	if m == nil {
		return
	}
	m.datasetHospitals.Set(float64(n))
}

func (m *Metrics) ObserveHTTPRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, status).Observe(seconds)
}

func (m *Metrics) IncRateLimitBlocked() {
	if m == nil {
		return
	}
	m.rateLimitBlocked.Inc()
}
