// Package metrics provides Prometheus metrics for the fieldrank service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics
	reviewsIngested        prometheus.Counter
	reviewsDuplicate       prometheus.Counter
	preferenceUpserts      prometheus.Counter
	recommendationsServed  prometheus.Counter
	recommendationLatency  prometheus.Histogram
	recommendationsEmpty   prometheus.Counter
	recommendationsNoPrefs prometheus.Counter

	// Tenure lookup metrics
	tenureLookups       prometheus.Counter
	tenureLookupErrors  prometheus.Counter
	tenureLookupLatency prometheus.Histogram
	tenurePresence      *prometheus.CounterVec

	// Store gauges
	totalSchools     prometheus.Gauge
	totalReviews     prometheus.Gauge
	totalPreferences prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fieldrank",
		subsystem:        "reviews",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.reviewsIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reviews_ingested_total",
		Help:      "Total number of reviews successfully stored",
	})
	m.reviewsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reviews_duplicate_total",
		Help:      "Total number of review submissions rejected as duplicates",
	})
	m.preferenceUpserts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "preference_upserts_total",
		Help:      "Total number of preference vector saves",
	})
	m.recommendationsServed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_served_total",
		Help:      "Total number of recommendation requests answered",
	})
	m.recommendationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendation_latency_milliseconds",
		Help:      "Histogram of recommendation computation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.recommendationsEmpty = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_empty_total",
		Help:      "Recommendation requests that found no qualifying schools",
	})
	m.recommendationsNoPrefs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_no_preferences_total",
		Help:      "Recommendation requests from users without a preference vector",
	})

	m.tenureLookups = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tenure_lookups_total",
		Help:      "Total number of coach tenure lookups issued",
	})
	m.tenureLookupErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tenure_lookup_errors_total",
		Help:      "Total number of failed coach tenure lookups",
	})
	m.tenureLookupLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tenure_lookup_latency_milliseconds",
		Help:      "Histogram of tenure lookup latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.tenurePresence = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "tenure_presence_total",
			Help:      "Coach presence judgements by outcome",
		},
		[]string{"presence"},
	)

	m.totalSchools = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_schools",
		Help:      "Number of schools in the catalog",
	})
	m.totalReviews = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_reviews",
		Help:      "Number of stored reviews",
	})
	m.totalPreferences = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_preferences",
		Help:      "Number of stored preference vectors",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// GetRegistry returns the custom Prometheus registry used by the global
// manager, for serving /healthz metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Global helper functions operating on the singleton manager.

// RecordReviewIngested increments the stored-review counter.
func RecordReviewIngested() { globalManager.reviewsIngested.Inc() }

// RecordReviewDuplicate increments the duplicate-review counter.
func RecordReviewDuplicate() { globalManager.reviewsDuplicate.Inc() }

// RecordPreferenceUpsert increments the preference-save counter.
func RecordPreferenceUpsert() { globalManager.preferenceUpserts.Inc() }

// RecordRecommendationServed increments the recommendation counter.
func RecordRecommendationServed() { globalManager.recommendationsServed.Inc() }

// RecordRecommendationLatency observes recommendation computation latency.
func RecordRecommendationLatency(latencyMs float64) {
	globalManager.recommendationLatency.Observe(latencyMs)
}

// RecordRecommendationEmpty increments the empty-result counter.
func RecordRecommendationEmpty() { globalManager.recommendationsEmpty.Inc() }

// RecordRecommendationNoPreferences increments the no-preferences counter.
func RecordRecommendationNoPreferences() { globalManager.recommendationsNoPrefs.Inc() }

// RecordTenureLookup increments the tenure-lookup counter.
func RecordTenureLookup() { globalManager.tenureLookups.Inc() }

// RecordTenureLookupError increments the tenure-lookup failure counter.
func RecordTenureLookupError() { globalManager.tenureLookupErrors.Inc() }

// RecordTenureLookupLatency observes tenure lookup latency.
func RecordTenureLookupLatency(latencyMs float64) {
	globalManager.tenureLookupLatency.Observe(latencyMs)
}

// RecordTenurePresence counts a presence judgement by outcome.
func RecordTenurePresence(presence string) {
	globalManager.tenurePresence.WithLabelValues(presence).Inc()
}

// UpdateTotalSchools sets the school catalog gauge.
func UpdateTotalSchools(count int) { globalManager.totalSchools.Set(float64(count)) }

// UpdateTotalReviews sets the stored-review gauge.
func UpdateTotalReviews(count int) { globalManager.totalReviews.Set(float64(count)) }

// UpdateTotalPreferences sets the preference gauge.
func UpdateTotalPreferences(count int) { globalManager.totalPreferences.Set(float64(count)) }

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}
