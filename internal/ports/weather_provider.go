package ports

import (
	"context"
	"time"
)

// Coordinates is a latitude/longitude pair as exchanged with adapters
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ObservationData represents one provider-reported forecast slot
type ObservationData struct {
	Timestamp            time.Time `json:"timestamp"`
	TemperatureC         float64   `json:"temperature_c"`
	HumidityPct          int       `json:"humidity_pct"`
	PressureHPa          int       `json:"pressure_hpa"`
	ConditionID          int       `json:"condition_id"`
	ConditionMain        string    `json:"condition_main"`
	ConditionDescription string    `json:"condition_description"`
	WindSpeedMs          float64   `json:"wind_speed_ms"`
	WindDegrees          float64   `json:"wind_degrees"`
}

// CacheStats represents cache performance metrics
type CacheStats struct {
	Hits        int64
	Misses      int64
	TotalOps    int64
	HitRatio    float64
	LastUpdated time.Time
}

// ForecastProvider defines the contract for multi-day forecast sources.
// Implementations return the provider's native time slots in chronological order.
type ForecastProvider interface {
	GetForecast(ctx context.Context, coords Coordinates) ([]ObservationData, error)
	GetProviderName() string
}

// ObservationCache defines the contract for caching raw forecast slots
type ObservationCache interface {
	Get(ctx context.Context, key string) ([]ObservationData, error)
	Set(ctx context.Context, key string, observations []ObservationData, ttl time.Duration) error
}
