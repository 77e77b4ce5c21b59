package infrastructure

import (
	"context"

	"lakeweather.bot/internal/ports"
)

// LocationCounter reports how many users have stored a location
type LocationCounter interface {
	Count(ctx context.Context) (int64, error)
}

// CircuitReporter exposes the forecast provider breaker state
type CircuitReporter interface {
	GetProviderName() string
	CircuitState() string
}

// MetricsCollectorAdapter implements the MetricsCollector interface for HTTPServerAdapter.
// It aggregates a JSON snapshot from the cache, the location store and the provider.
type MetricsCollectorAdapter struct {
	cacheMetrics ports.CacheMetrics
	locations    LocationCounter
	provider     CircuitReporter
}

// MetricsCollectorConfig holds configuration for creating the metrics collector
type MetricsCollectorConfig struct {
	CacheMetrics ports.CacheMetrics
	Locations    LocationCounter
	Provider     CircuitReporter
}

// NewMetricsCollectorAdapter creates a new metrics collector adapter; every source is optional
func NewMetricsCollectorAdapter(config MetricsCollectorConfig) *MetricsCollectorAdapter {
	return &MetricsCollectorAdapter{
		cacheMetrics: config.CacheMetrics,
		locations:    config.Locations,
		provider:     config.Provider,
	}
}

// GetMetrics returns aggregated metrics from all monitored components
func (m *MetricsCollectorAdapter) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	metrics := make(map[string]interface{})

	if m.provider != nil {
		metrics["provider"] = map[string]interface{}{
			"name":    m.provider.GetProviderName(),
			"circuit": m.provider.CircuitState(),
		}
	}

	if m.cacheMetrics != nil {
		cacheStats := m.cacheMetrics.GetStats()
		metrics["cache"] = map[string]interface{}{
			"hits":      cacheStats.Hits,
			"misses":    cacheStats.Misses,
			"total_ops": cacheStats.TotalOps,
			"hit_ratio": cacheStats.HitRatio,
			"updated":   cacheStats.LastUpdated,
		}
	}

	if m.locations != nil {
		count, err := m.locations.Count(ctx)
		if err != nil {
			return nil, err
		}
		metrics["locations"] = map[string]interface{}{
			"stored": count,
		}
	}

	return metrics, nil
}
