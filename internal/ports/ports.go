// Package ports defines the interfaces for external dependencies in our hexagonal architecture.
// These interfaces are implemented by adapters and replaced with testify mocks in tests.
package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	ForecastProvider ForecastProvider
	ObservationCache ObservationCache

	// Location
	LocationRepository LocationRepository

	// Cache
	CacheMetrics CacheMetrics

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
	Metrics        MetricsRecorder
	Database       interface{}
}
