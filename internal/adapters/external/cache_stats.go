package external

import (
	"sync/atomic"
	"time"

	"lakeweather.bot/internal/ports"
	"lakeweather.bot/pkg/errors"
)

// hitCounter tracks cache lookups for the CacheMetrics port
type hitCounter struct {
	hits   atomic.Int64
	misses atomic.Int64
}

func (h *hitCounter) RecordHit() {
	h.hits.Add(1)
}

func (h *hitCounter) RecordMiss() {
	h.misses.Add(1)
}

func (h *hitCounter) snapshot(now time.Time) ports.CacheStats {
	hits := h.hits.Load()
	misses := h.misses.Load()
	total := hits + misses

	var ratio float64
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}

	return ports.CacheStats{
		Hits:        hits,
		Misses:      misses,
		TotalOps:    total,
		HitRatio:    ratio,
		LastUpdated: now,
	}
}

func validateCacheKey(key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	return nil
}

func validateCacheEntry(key string, value []byte, ttl time.Duration) error {
	if err := validateCacheKey(key); err != nil {
		return err
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl <= 0 {
		return errors.NewValidationError("cache TTL must be positive")
	}
	return nil
}
