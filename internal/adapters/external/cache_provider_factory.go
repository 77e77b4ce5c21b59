package external

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"lakeweather.bot/internal/config"
	"lakeweather.bot/internal/ports"
	"lakeweather.bot/pkg/errors"
)

// CacheProvider is a generic cache that also reports its hit statistics
type CacheProvider interface {
	ports.CacheProvider
	ports.CacheMetrics
}

type CacheProviderFactory struct {
	clock clockwork.Clock
}

func NewCacheProviderFactory(clock clockwork.Clock) *CacheProviderFactory {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CacheProviderFactory{clock: clock}
}

func (f *CacheProviderFactory) CreateCacheProvider(cfg *config.CacheConfig) (CacheProvider, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("cache config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.CacheTypeMemory:
		return NewMemoryCacheProviderWithClock(f.clock), nil
	case config.CacheTypeRedis:
		redisCache, err := NewRedisCacheProviderAdapter(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		return redisCache, nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type.String()), nil)
	}
}
