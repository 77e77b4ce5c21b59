package external

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"lakeweather.bot/internal/config"
	"lakeweather.bot/internal/ports"
	"lakeweather.bot/pkg/errors"
)

const (
	redisKeyPrefix     = "lakeweather:"
	redisConnectWait   = 5 * time.Second
	redisScanBatchSize = 100
)

// RedisCacheProviderAdapter stores cache entries in Redis under a fixed key prefix
// so that Clear never touches keys owned by other applications.
type RedisCacheProviderAdapter struct {
	hitCounter

	client *redis.Client
	prefix string
}

// NewRedisCacheProviderAdapter connects to Redis and fails fast when it is unreachable
func NewRedisCacheProviderAdapter(cfg *config.RedisConfig) (*RedisCacheProviderAdapter, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("redis config cannot be nil", nil)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisConnectWait)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewStorageError(fmt.Sprintf("failed to connect to Redis at %s", cfg.Addr), err)
	}

	return &RedisCacheProviderAdapter{client: client, prefix: redisKeyPrefix}, nil
}

func (r *RedisCacheProviderAdapter) key(k string) string {
	return r.prefix + k
}

func redisError(op string, err error) error {
	return errors.NewStorageError(fmt.Sprintf("redis %s failed", op), err)
}

func (r *RedisCacheProviderAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateCacheKey(key); err != nil {
		return nil, err
	}

	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	switch {
	case stderrors.Is(err, redis.Nil):
		r.RecordMiss()
		return nil, errors.NewNotFoundError("cache miss")
	case err != nil:
		return nil, redisError("get", err)
	}

	r.RecordHit()
	return val, nil
}

func (r *RedisCacheProviderAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := validateCacheEntry(key, value, ttl); err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return redisError("set", err)
	}
	return nil
}

func (r *RedisCacheProviderAdapter) Delete(ctx context.Context, key string) error {
	if err := validateCacheKey(key); err != nil {
		return err
	}

	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return redisError("delete", err)
	}
	return nil
}

func (r *RedisCacheProviderAdapter) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateCacheKey(key); err != nil {
		return false, err
	}

	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, redisError("exists", err)
	}
	return n > 0, nil
}

// Clear removes every key under the adapter's prefix
func (r *RedisCacheProviderAdapter) Clear(ctx context.Context) error {
	var keys []string
	iter := r.client.Scan(ctx, 0, r.key("*"), redisScanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return redisError("scan", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return redisError("clear", err)
	}
	return nil
}

func (r *RedisCacheProviderAdapter) GetStats() ports.CacheStats {
	return r.snapshot(time.Now())
}

// Ping is used by the cache health check
func (r *RedisCacheProviderAdapter) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return redisError("ping", err)
	}
	return nil
}

func (r *RedisCacheProviderAdapter) Close() error {
	if err := r.client.Close(); err != nil {
		return redisError("close", err)
	}
	return nil
}
