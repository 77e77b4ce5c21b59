package external

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lakeweather.bot/pkg/errors"
)

func TestMemoryCacheProvider_Expiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := NewMemoryCacheProviderWithClock(clock)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 10*time.Minute))

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	clock.Advance(11 * time.Minute)

	_, err = cache.Get(ctx, "k")
	assert.True(t, errors.IsNotFoundError(err))

	exists, err := cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCacheProvider_Capacity(t *testing.T) {
	t.Run("SweepsExpiredFirst", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		cache := NewBoundedMemoryCacheProvider(clock, 2)
		ctx := context.Background()

		require.NoError(t, cache.Set(ctx, "old", []byte("v"), time.Minute))
		require.NoError(t, cache.Set(ctx, "live", []byte("v"), time.Hour))
		clock.Advance(2 * time.Minute)
		require.NoError(t, cache.Set(ctx, "new", []byte("v"), time.Minute))

		assert.Equal(t, 2, cache.Len())
		exists, err := cache.Exists(ctx, "live")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("EvictsSoonestToExpire", func(t *testing.T) {
		cache := NewBoundedMemoryCacheProvider(clockwork.NewFakeClock(), 2)
		ctx := context.Background()

		require.NoError(t, cache.Set(ctx, "short", []byte("v"), time.Minute))
		require.NoError(t, cache.Set(ctx, "long", []byte("v"), time.Hour))
		require.NoError(t, cache.Set(ctx, "third", []byte("v"), 10*time.Minute))

		assert.Equal(t, 2, cache.Len())
		_, err := cache.Get(ctx, "short")
		assert.True(t, errors.IsNotFoundError(err))
		_, err = cache.Get(ctx, "long")
		assert.NoError(t, err)
	})

	t.Run("OverwriteDoesNotEvict", func(t *testing.T) {
		cache := NewBoundedMemoryCacheProvider(clockwork.NewFakeClock(), 1)
		ctx := context.Background()

		require.NoError(t, cache.Set(ctx, "k", []byte("1"), time.Minute))
		require.NoError(t, cache.Set(ctx, "k", []byte("2"), time.Minute))

		got, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("2"), got)
	})
}

func TestMemoryCacheProvider_DeleteAndClear(t *testing.T) {
	cache := NewMemoryCacheProvider()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, cache.Delete(ctx, "a"))
	_, err := cache.Get(ctx, "a")
	assert.True(t, errors.IsNotFoundError(err))

	require.NoError(t, cache.Clear(ctx))
	_, err = cache.Get(ctx, "b")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestMemoryCacheProvider_Validation(t *testing.T) {
	cache := NewMemoryCacheProvider()
	ctx := context.Background()

	_, err := cache.Get(ctx, "")
	assert.True(t, errors.IsValidationError(err))
	assert.True(t, errors.IsValidationError(cache.Set(ctx, "k", nil, time.Minute)))
	assert.True(t, errors.IsValidationError(cache.Set(ctx, "k", []byte("v"), 0)))
	assert.True(t, errors.IsValidationError(cache.Delete(ctx, "")))
}

func TestMemoryCacheProvider_Stats(t *testing.T) {
	cache := NewMemoryCacheProvider()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	_, _ = cache.Get(ctx, "k")
	_, _ = cache.Get(ctx, "missing")
	cache.RecordHit()

	stats := cache.GetStats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(3), stats.TotalOps)
}
