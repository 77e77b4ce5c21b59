package location

import (
	"context"
	"fmt"

	"lakeweather.bot/internal/ports"
	"lakeweather.bot/pkg/errors"
)

// Store resolves and persists per-user coordinates
type Store interface {
	Get(ctx context.Context, userID int64) (Coordinate, error)
	Upsert(ctx context.Context, userID int64, coord Coordinate) error
}

type UseCase struct {
	repository ports.LocationRepository
	config     ports.ConfigProvider
	logger     ports.Logger
	metrics    ports.MetricsRecorder
}

type UseCaseDependencies struct {
	Repository ports.LocationRepository
	Config     ports.ConfigProvider
	Logger     ports.Logger
	Metrics    ports.MetricsRecorder
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Repository == nil {
		return nil, errors.NewValidationError("location repository is required")
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

	return &UseCase{
		repository: deps.Repository,
		config:     deps.Config,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
	}, nil
}

// Get returns the stored coordinate for userID, or the configured default
// when the user never shared one. Only a storage failure is reported as an error.
func (uc *UseCase) Get(ctx context.Context, userID int64) (Coordinate, error) {
	data, err := uc.repository.FindByUserID(ctx, userID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			uc.logger.Debug("No stored location, using default", ports.F("userID", userID))
			return uc.Default(), nil
		}
		uc.logger.Error("Failed to load location",
			ports.F("userID", userID),
			ports.F("error", err))
		if errors.IsStorageError(err) {
			return Coordinate{}, err
		}
		return Coordinate{}, errors.NewStorageError("failed to load user location", err)
	}

	return Coordinate{Latitude: data.Latitude, Longitude: data.Longitude}, nil
}

// Upsert records coord as the user's location, replacing any previous value
func (uc *UseCase) Upsert(ctx context.Context, userID int64, coord Coordinate) error {
	if err := coord.Validate(); err != nil {
		return errors.NewValidationError("invalid coordinate: " + err.Error())
	}

	err := uc.repository.Upsert(ctx, &ports.LocationData{
		UserID:    userID,
		Latitude:  coord.Latitude,
		Longitude: coord.Longitude,
	})
	uc.metrics.RecordLocationUpsert(err == nil)
	if err != nil {
		uc.logger.Error("Failed to save location",
			ports.F("userID", userID),
			ports.F("error", err))
		if errors.IsStorageError(err) {
			return err
		}
		return errors.NewStorageError("failed to save user location", err)
	}

	uc.logger.Info("Location saved",
		ports.F("userID", userID),
		ports.F("latitude", coord.Latitude),
		ports.F("longitude", coord.Longitude))
	return nil
}

// Default returns the configured fallback coordinate
func (uc *UseCase) Default() Coordinate {
	def := uc.config.GetForecastConfig().DefaultLocation
	return Coordinate{Latitude: def.Latitude, Longitude: def.Longitude}
}

// Count returns the number of users with a stored location
func (uc *UseCase) Count(ctx context.Context) (int64, error) {
	n, err := uc.repository.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return n, nil
}
