package infrastructure

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "lakeweather"

// PrometheusMetrics implements the MetricsRecorder port with Prometheus collectors
type PrometheusMetrics struct {
	ForecastRequests *prometheus.CounterVec   // labels: outcome
	ProviderCalls    *prometheus.CounterVec   // labels: provider, success
	ProviderDuration *prometheus.HistogramVec // labels: provider
	CacheLookups     *prometheus.CounterVec   // labels: result={hit,miss}
	LocationUpserts  *prometheus.CounterVec   // labels: success
}

// NewPrometheusMetrics creates the collectors and registers them with registerer.
// A nil registerer means the default Prometheus registry.
func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := newPrometheusMetrics()
	registerer.MustRegister(
		m.ForecastRequests,
		m.ProviderCalls,
		m.ProviderDuration,
		m.CacheLookups,
		m.LocationUpserts,
	)
	return m
}

// NewPrometheusMetricsForTesting returns unregistered collectors so tests
// can build as many instances as they like.
func NewPrometheusMetricsForTesting() *PrometheusMetrics {
	return newPrometheusMetrics()
}

func newPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		ForecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "forecast_requests_total",
			Help:      "Forecast requests by outcome.",
		}, []string{"outcome"}),
		ProviderCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "provider_calls_total",
			Help:      "Upstream forecast provider calls by provider and success.",
		}, []string{"provider", "success"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "provider_call_duration_seconds",
			Help:      "Upstream forecast provider latency in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "observation_cache_total",
			Help:      "Observation cache lookups by result.",
		}, []string{"result"}),
		LocationUpserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "location_upserts_total",
			Help:      "Location writes by success.",
		}, []string{"success"}),
	}
}

func (m *PrometheusMetrics) RecordForecastRequest(outcome string) {
	m.ForecastRequests.WithLabelValues(outcome).Inc()
}

func (m *PrometheusMetrics) RecordProviderCall(provider string, success bool, duration time.Duration) {
	m.ProviderCalls.WithLabelValues(provider, strconv.FormatBool(success)).Inc()
	m.ProviderDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordCacheResult(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *PrometheusMetrics) RecordLocationUpsert(success bool) {
	m.LocationUpserts.WithLabelValues(strconv.FormatBool(success)).Inc()
}
