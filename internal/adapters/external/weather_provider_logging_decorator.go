package external

import (
	"context"
	"time"

	"lakeweather.bot/internal/ports"
)

// ForecastProviderLoggingDecorator decorates forecast providers with structured logging
type ForecastProviderLoggingDecorator struct {
	provider ports.ForecastProvider
	logger   ports.Logger
}

// NewForecastProviderLoggingDecorator creates a new logging decorator for forecast providers
func NewForecastProviderLoggingDecorator(provider ports.ForecastProvider, logger ports.Logger) ports.ForecastProvider {
	return &ForecastProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
	}
}

// GetForecast wraps the provider call with structured logging
func (d *ForecastProviderLoggingDecorator) GetForecast(ctx context.Context, coords ports.Coordinates) ([]ports.ObservationData, error) {
	providerName := d.provider.GetProviderName()

	d.logger.Info("Forecast API request started",
		ports.F("provider", providerName),
		ports.F("latitude", coords.Latitude),
		ports.F("longitude", coords.Longitude),
		ports.F("event", "request"))

	startTime := time.Now()
	observations, err := d.provider.GetForecast(ctx, coords)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Forecast API request failed",
			ports.F("provider", providerName),
			ports.F("latitude", coords.Latitude),
			ports.F("longitude", coords.Longitude),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	fields := []ports.Field{
		ports.F("provider", providerName),
		ports.F("latitude", coords.Latitude),
		ports.F("longitude", coords.Longitude),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("slots", len(observations)),
	}
	if len(observations) > 0 {
		fields = append(fields,
			ports.F("first_slot", observations[0].Timestamp),
			ports.F("last_slot", observations[len(observations)-1].Timestamp))
	}
	d.logger.Info("Forecast API request completed", fields...)

	return observations, nil
}

// GetProviderName returns the name of the wrapped provider with logging indication
func (d *ForecastProviderLoggingDecorator) GetProviderName() string {
	return "logged(" + d.provider.GetProviderName() + ")"
}

// ForecastProviderMetricsDecorator records call counts and latency for a forecast provider
type ForecastProviderMetricsDecorator struct {
	provider ports.ForecastProvider
	metrics  ports.MetricsRecorder
}

// NewForecastProviderMetricsDecorator creates a new metrics decorator for forecast providers
func NewForecastProviderMetricsDecorator(provider ports.ForecastProvider, metrics ports.MetricsRecorder) ports.ForecastProvider {
	return &ForecastProviderMetricsDecorator{
		provider: provider,
		metrics:  metrics,
	}
}

// GetForecast wraps the provider call with metrics
func (d *ForecastProviderMetricsDecorator) GetForecast(ctx context.Context, coords ports.Coordinates) ([]ports.ObservationData, error) {
	startTime := time.Now()
	observations, err := d.provider.GetForecast(ctx, coords)
	d.metrics.RecordProviderCall(d.provider.GetProviderName(), err == nil, time.Since(startTime))
	return observations, err
}

// GetProviderName returns the name of the wrapped provider
func (d *ForecastProviderMetricsDecorator) GetProviderName() string {
	return d.provider.GetProviderName()
}
