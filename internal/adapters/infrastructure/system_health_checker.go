package infrastructure

import (
	"context"

	"lakeweather.bot/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	checkers       map[string]ports.HealthChecker
	configProvider ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	DatabaseChecker ports.HealthChecker
	ProviderChecker ports.HealthChecker
	CacheChecker    ports.HealthChecker
	ConfigProvider  ports.ConfigProvider
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	checkers := make(map[string]ports.HealthChecker)
	if config.DatabaseChecker != nil {
		checkers["database"] = config.DatabaseChecker
	}
	if config.ProviderChecker != nil {
		checkers["forecastProvider"] = config.ProviderChecker
	}
	if config.CacheChecker != nil {
		checkers["cache"] = config.CacheChecker
	}

	return &SystemHealthChecker{
		checkers:       checkers,
		configProvider: config.ConfigProvider,
	}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers)+1)

	for name, checker := range s.checkers {
		results[name] = checker.Check(ctx)
	}

	if s.configProvider != nil {
		forecastConfig := s.configProvider.GetForecastConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    statusHealthy,
			Details: map[string]interface{}{
				"defaultLatitude":  forecastConfig.DefaultLocation.Latitude,
				"defaultLongitude": forecastConfig.DefaultLocation.Longitude,
				"maxDays":          forecastConfig.MaxDays,
				"timezone":         forecastConfig.Timezone.String(),
			},
		}
	}

	return results
}
