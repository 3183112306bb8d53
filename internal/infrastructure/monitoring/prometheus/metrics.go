package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric the descriptor service emits.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Descriptor engine
	ComputeTotal            CounterVec
	ComputeDuration         HistogramVec
	GrandPotentialEvalTotal CounterVec
	ExtrapolationsTotal     CounterVec

	// Infrastructure
	DBQueryDuration HistogramVec
	CacheHitsTotal  CounterVec
	CacheMissesTotal CounterVec

	// System health
	HealthCheckStatus GaugeVec
}

var (
	// DefaultHTTPDurationBuckets suit request handling latencies.
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

	// DefaultComputeDurationBuckets suit closed-form fits, which are
	// microsecond-scale but pay serialization and storage costs around them.
	DefaultComputeDurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}

	// DefaultDBDurationBuckets suit single-row repository queries.
	DefaultDBDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
)

// NewAppMetrics registers all service metrics on the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method")

	m.ComputeTotal = collector.RegisterCounter("descriptor_compute_total", "Descriptor computations", "model", "status")
	m.ComputeDuration = collector.RegisterHistogram("descriptor_compute_duration_seconds", "Descriptor computation duration", DefaultComputeDurationBuckets, "model")
	m.GrandPotentialEvalTotal = collector.RegisterCounter("grand_potential_eval_total", "Grand potential evaluations", "model", "status")
	m.ExtrapolationsTotal = collector.RegisterCounter("extrapolation_warnings_total", "Evaluations outside the interpolation window", "model")

	m.DBQueryDuration = collector.RegisterHistogram("db_query_duration_seconds", "Database query duration", DefaultDBDurationBuckets, "operation")
	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")

	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")

	return m
}

// RecordHTTPRequest observes one completed HTTP request.
func (m *AppMetrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordCompute observes one descriptor computation.
func (m *AppMetrics) RecordCompute(model, status string, duration time.Duration) {
	m.ComputeTotal.WithLabelValues(model, status).Inc()
	m.ComputeDuration.WithLabelValues(model).Observe(duration.Seconds())
}
