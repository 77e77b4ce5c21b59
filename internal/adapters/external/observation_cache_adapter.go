package external

import (
	"context"
	"encoding/json"
	"time"

	"lakeweather.bot/internal/ports"
	"lakeweather.bot/pkg/errors"
)

// ObservationCacheAdapter bridges generic CacheProvider to the forecast-specific ObservationCache
type ObservationCacheAdapter struct {
	cacheProvider ports.CacheProvider
}

// NewObservationCacheAdapter creates an observation cache adapter using generic cache provider
func NewObservationCacheAdapter(cacheProvider ports.CacheProvider) ports.ObservationCache {
	return &ObservationCacheAdapter{
		cacheProvider: cacheProvider,
	}
}

// Get retrieves cached forecast slots
func (a *ObservationCacheAdapter) Get(ctx context.Context, key string) ([]ports.ObservationData, error) {
	data, err := a.cacheProvider.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var observations []ports.ObservationData
	if err := json.Unmarshal(data, &observations); err != nil {
		return nil, errors.NewStorageError("failed to deserialize observations", err)
	}

	return observations, nil
}

// Set stores forecast slots in cache
func (a *ObservationCacheAdapter) Set(ctx context.Context, key string, observations []ports.ObservationData, ttl time.Duration) error {
	if len(observations) == 0 {
		return errors.NewValidationError("observations cannot be empty")
	}

	data, err := json.Marshal(observations)
	if err != nil {
		return errors.NewStorageError("failed to serialize observations", err)
	}

	return a.cacheProvider.Set(ctx, key, data, ttl)
}
