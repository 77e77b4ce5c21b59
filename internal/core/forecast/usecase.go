package forecast

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"lakeweather.bot/internal/core/location"
	"lakeweather.bot/internal/ports"
	"lakeweather.bot/pkg/errors"
)

const (
	outcomeSuccess             = "success"
	outcomeInvalid             = "invalid"
	outcomeUnsupportedRange    = "unsupported_range"
	outcomeStorageError        = "storage_error"
	outcomeProviderUnavailable = "provider_unavailable"
)

type UseCase struct {
	locations  location.Store
	provider   ports.ForecastProvider
	cache      ports.ObservationCache
	config     ports.ConfigProvider
	logger     ports.Logger
	metrics    ports.MetricsRecorder
	clock      clockwork.Clock
	aggregator *Aggregator
}

type UseCaseDependencies struct {
	Locations location.Store
	Provider  ports.ForecastProvider
	// Cache is optional; without it every request reaches the provider
	Cache   ports.ObservationCache
	Config  ports.ConfigProvider
	Logger  ports.Logger
	Metrics ports.MetricsRecorder
	// Clock defaults to the real clock
	Clock clockwork.Clock
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Locations == nil {
		return nil, errors.NewValidationError("location store is required")
	}
	if deps.Provider == nil {
		return nil, errors.NewValidationError("forecast provider is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	forecastConfig := deps.Config.GetForecastConfig()

	return &UseCase{
		locations: deps.Locations,
		provider:  deps.Provider,
		cache:     deps.Cache,
		config:    deps.Config,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
		clock:     clock,
		aggregator: NewAggregator(
			WithTimezone(forecastConfig.Timezone),
			WithCircularWindMean(forecastConfig.CircularWindMean),
		),
	}, nil
}

// DefaultDays returns the day count used when a caller does not specify one
func (uc *UseCase) DefaultDays() int {
	return uc.config.GetForecastConfig().DefaultDays
}

// GetForecast returns the forecast for the user's stored location, or the default
// location when none was shared. The day count is checked before any lookup.
func (uc *UseCase) GetForecast(ctx context.Context, userID int64, days int) (*Forecast, error) {
	if err := uc.validateDays(days); err != nil {
		uc.metrics.RecordForecastRequest(outcomeFor(err))
		return nil, err
	}

	coord, err := uc.locations.Get(ctx, userID)
	if err != nil {
		uc.metrics.RecordForecastRequest(outcomeStorageError)
		return nil, fmt.Errorf("resolve location for user %d: %w", userID, err)
	}

	return uc.GetForecastAt(ctx, coord, days)
}

// GetForecastAt returns the forecast for an explicit coordinate
func (uc *UseCase) GetForecastAt(ctx context.Context, coord location.Coordinate, days int) (*Forecast, error) {
	forecast, err := uc.getForecastAt(ctx, coord, days)
	uc.metrics.RecordForecastRequest(outcomeFor(err))
	return forecast, err
}

func (uc *UseCase) getForecastAt(ctx context.Context, coord location.Coordinate, days int) (*Forecast, error) {
	if err := uc.validateDays(days); err != nil {
		return nil, err
	}
	if err := coord.Validate(); err != nil {
		return nil, errors.NewValidationError("invalid coordinate: " + err.Error())
	}

	uc.logger.Debug("Getting forecast",
		ports.F("latitude", coord.Latitude),
		ports.F("longitude", coord.Longitude),
		ports.F("days", days))

	observations, err := uc.getObservations(ctx, coord)
	if err != nil {
		uc.logger.Error("Failed to get observations",
			ports.F("coordinate", coord.String()),
			ports.F("error", err))
		return nil, err
	}

	summaries, err := uc.aggregator.Aggregate(observations, days)
	if err != nil {
		if errors.IsInsufficientDataError(err) {
			return nil, errors.NewProviderUnavailableError("provider returned no forecast data", err)
		}
		return nil, err
	}

	uc.logger.Debug("Forecast aggregated",
		ports.F("coordinate", coord.String()),
		ports.F("observations", len(observations)),
		ports.F("days", len(summaries)))

	return &Forecast{
		Coordinate:  coord,
		Days:        Decorate(summaries),
		GeneratedAt: uc.clock.Now(),
	}, nil
}

func (uc *UseCase) validateDays(days int) error {
	if days < 1 {
		return errors.NewValidationError("days must be at least 1")
	}
	maxDays := uc.config.GetForecastConfig().MaxDays
	if maxDays < 1 || maxDays > MaxForecastDays {
		maxDays = MaxForecastDays
	}
	if days > maxDays {
		return errors.NewUnsupportedRangeError(fmt.Sprintf("forecast is limited to %d days, got %d", maxDays, days))
	}
	return nil
}

func (uc *UseCase) getObservations(ctx context.Context, coord location.Coordinate) ([]Observation, error) {
	weatherConfig := uc.config.GetWeatherConfig()
	if uc.cache == nil || !weatherConfig.EnableCache {
		return uc.getObservationsFromProvider(ctx, coord)
	}

	cacheKey := fmt.Sprintf("forecast:%.4f:%.4f", coord.Latitude, coord.Longitude)
	cached, err := uc.cache.Get(ctx, cacheKey)
	if err == nil && len(cached) > 0 {
		uc.metrics.RecordCacheResult(true)
		uc.logger.Debug("Observations found in cache", ports.F("key", cacheKey))
		return convertFromPortsObservations(cached), nil
	}
	uc.metrics.RecordCacheResult(false)

	observations, err := uc.getObservationsFromProvider(ctx, coord)
	if err != nil {
		return nil, err
	}

	if cacheErr := uc.cache.Set(ctx, cacheKey, convertToPortsObservations(observations), weatherConfig.CacheTTL); cacheErr != nil {
		uc.logger.Warn("Failed to cache observations",
			ports.F("key", cacheKey),
			ports.F("error", cacheErr))
	}

	return observations, nil
}

func (uc *UseCase) getObservationsFromProvider(ctx context.Context, coord location.Coordinate) ([]Observation, error) {
	data, err := uc.provider.GetForecast(ctx, ports.Coordinates{
		Latitude:  coord.Latitude,
		Longitude: coord.Longitude,
	})
	if err != nil {
		if errors.IsProviderUnavailableError(err) {
			return nil, err
		}
		return nil, errors.NewProviderUnavailableError("forecast provider failed", err)
	}
	return convertFromPortsObservations(data), nil
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.IsUnsupportedRangeError(err):
		return outcomeUnsupportedRange
	case errors.IsValidationError(err):
		return outcomeInvalid
	case errors.IsStorageError(err):
		return outcomeStorageError
	default:
		return outcomeProviderUnavailable
	}
}

func convertFromPortsObservations(data []ports.ObservationData) []Observation {
	observations := make([]Observation, 0, len(data))
	for _, d := range data {
		observations = append(observations, Observation{
			Timestamp:            d.Timestamp,
			TemperatureC:         d.TemperatureC,
			HumidityPct:          d.HumidityPct,
			PressureHPa:          d.PressureHPa,
			ConditionID:          d.ConditionID,
			ConditionMain:        d.ConditionMain,
			ConditionDescription: d.ConditionDescription,
			WindSpeedMs:          d.WindSpeedMs,
			WindDegrees:          d.WindDegrees,
		})
	}
	return observations
}

func convertToPortsObservations(observations []Observation) []ports.ObservationData {
	data := make([]ports.ObservationData, 0, len(observations))
	for _, o := range observations {
		data = append(data, ports.ObservationData{
			Timestamp:            o.Timestamp,
			TemperatureC:         o.TemperatureC,
			HumidityPct:          o.HumidityPct,
			PressureHPa:          o.PressureHPa,
			ConditionID:          o.ConditionID,
			ConditionMain:        o.ConditionMain,
			ConditionDescription: o.ConditionDescription,
			WindSpeedMs:          o.WindSpeedMs,
			WindDegrees:          o.WindDegrees,
		})
	}
	return data
}
