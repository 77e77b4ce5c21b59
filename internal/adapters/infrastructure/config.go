package infrastructure

import (
	"time"

	"lakeweather.bot/internal/config"
	"lakeweather.bot/internal/ports"
	"lakeweather.bot/pkg/errors"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config   *config.Config
	timezone *time.Location
}

// NewConfigProviderAdapter creates a new config provider adapter. The bucketing
// timezone is resolved once here so the use cases never see a lookup failure.
func NewConfigProviderAdapter(cfg *config.Config) (*ConfigProviderAdapter, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("config is required", nil)
	}

	timezone, err := cfg.Forecast.Location()
	if err != nil {
		return nil, err
	}

	return &ConfigProviderAdapter{
		config:   cfg,
		timezone: timezone,
	}, nil
}

// GetWeatherConfig returns weather configuration
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		EnableCache: c.config.Weather.EnableCache,
		CacheTTL:    time.Duration(c.config.Weather.CacheTTLMinutes) * time.Minute,
		Timeout:     c.config.Weather.Timeout(),
	}
}

// GetForecastConfig returns forecast configuration
func (c *ConfigProviderAdapter) GetForecastConfig() ports.ForecastConfig {
	return ports.ForecastConfig{
		DefaultLocation: ports.Coordinates{
			Latitude:  c.config.Forecast.DefaultLatitude,
			Longitude: c.config.Forecast.DefaultLongitude,
		},
		DefaultDays:      c.config.Forecast.DefaultDays,
		MaxDays:          c.config.Forecast.MaxDays,
		Timezone:         c.timezone,
		CircularWindMean: c.config.Forecast.CircularWindMean,
	}
}
