package ports

import (
	"time"
)

// WeatherConfig represents weather provider configuration
type WeatherConfig struct {
	EnableCache bool
	CacheTTL    time.Duration
	Timeout     time.Duration
}

// ForecastConfig represents forecast aggregation configuration
type ForecastConfig struct {
	DefaultLocation  Coordinates
	DefaultDays      int
	MaxDays          int
	Timezone         *time.Location
	CircularWindMean bool
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetForecastConfig() ForecastConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// MetricsRecorder defines the contract for operational metrics
type MetricsRecorder interface {
	RecordForecastRequest(outcome string)
	RecordProviderCall(provider string, success bool, duration time.Duration)
	RecordCacheResult(hit bool)
	RecordLocationUpsert(success bool)
}
