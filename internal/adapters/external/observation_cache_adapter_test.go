package external

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"lakeweather.bot/internal/mocks"
	"lakeweather.bot/pkg/errors"
)

func TestObservationCacheAdapter_RoundTripThroughRedis(t *testing.T) {
	_, redisAdapter := setupRedisAdapter(t)
	cache := NewObservationCacheAdapter(redisAdapter)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "forecast:61.1120:30.3396", testSlots(), time.Minute))

	got, err := cache.Get(ctx, "forecast:61.1120:30.3396")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, testSlots()[0].Timestamp.Equal(got[0].Timestamp))
	assert.Equal(t, "Clouds", got[1].ConditionMain)
}

func TestObservationCacheAdapter_Miss(t *testing.T) {
	cache := NewObservationCacheAdapter(NewMemoryCacheProvider())

	_, err := cache.Get(context.Background(), "absent")

	assert.True(t, errors.IsNotFoundError(err))
}

func TestObservationCacheAdapter_CorruptEntry(t *testing.T) {
	provider := mocks.NewCacheProvider(t)
	provider.EXPECT().Get(mock.Anything, "bad").Return([]byte("{not json"), nil)
	cache := NewObservationCacheAdapter(provider)

	_, err := cache.Get(context.Background(), "bad")

	assert.True(t, errors.IsStorageError(err))
}

func TestObservationCacheAdapter_RejectsEmpty(t *testing.T) {
	provider := mocks.NewCacheProvider(t)
	cache := NewObservationCacheAdapter(provider)

	err := cache.Set(context.Background(), "k", nil, time.Minute)

	assert.True(t, errors.IsValidationError(err))
	provider.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
