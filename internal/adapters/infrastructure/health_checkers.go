package infrastructure

import (
	"context"

	"gorm.io/gorm"
	"lakeweather.bot/internal/ports"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// DatabaseHealthChecker pings the location database
type DatabaseHealthChecker struct {
	db *gorm.DB
}

// NewDatabaseHealthChecker creates a new database health checker
func NewDatabaseHealthChecker(db *gorm.DB) *DatabaseHealthChecker {
	return &DatabaseHealthChecker{db: db}
}

// Check verifies database connectivity
func (d *DatabaseHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "database",
		Details:   make(map[string]interface{}),
	}

	if d.db == nil {
		status.Status = statusUnhealthy
		status.Error = "database instance is nil"
		return status
	}
	status.Details["driver"] = d.db.Dialector.Name()

	sqlDB, err := d.db.DB()
	if err != nil {
		status.Status = statusUnhealthy
		status.Error = "failed to get underlying database connection"
		return status
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		status.Status = statusUnhealthy
		status.Error = err.Error()
		return status
	}

	status.Status = statusHealthy
	status.Details["connected"] = true
	return status
}

// ForecastProviderHealthChecker reports the provider circuit breaker state.
// It never calls the upstream API.
type ForecastProviderHealthChecker struct {
	provider CircuitReporter
}

func NewForecastProviderHealthChecker(provider CircuitReporter) *ForecastProviderHealthChecker {
	return &ForecastProviderHealthChecker{provider: provider}
}

func (f *ForecastProviderHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "forecastProvider",
		Details:   make(map[string]interface{}),
	}

	if f.provider == nil {
		status.Status = statusUnhealthy
		status.Error = "forecast provider is not available"
		return status
	}

	state := f.provider.CircuitState()
	status.Details["provider"] = f.provider.GetProviderName()
	status.Details["circuit"] = state

	switch state {
	case "open":
		status.Status = statusUnhealthy
		status.Error = "circuit breaker is open"
	case "half-open":
		status.Status = statusDegraded
	default:
		status.Status = statusHealthy
	}
	return status
}

// Pinger is implemented by caches backed by a remote server
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheHealthChecker reports cache statistics and, for remote caches, reachability
type CacheHealthChecker struct {
	metrics ports.CacheMetrics
	pinger  Pinger
}

// NewCacheHealthChecker accepts a nil pinger for in-process caches
func NewCacheHealthChecker(metrics ports.CacheMetrics, pinger Pinger) *CacheHealthChecker {
	return &CacheHealthChecker{metrics: metrics, pinger: pinger}
}

func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Status:    statusHealthy,
		Details:   make(map[string]interface{}),
	}

	if c.metrics != nil {
		stats := c.metrics.GetStats()
		status.Details["hit_ratio"] = stats.HitRatio
		status.Details["total_ops"] = stats.TotalOps
	}

	if c.pinger != nil {
		if err := c.pinger.Ping(ctx); err != nil {
			status.Status = statusDegraded
			status.Error = err.Error()
		}
	}
	return status
}
