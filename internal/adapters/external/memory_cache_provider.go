package external

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"lakeweather.bot/internal/ports"
	"lakeweather.bot/pkg/errors"
)

// DefaultMemoryCacheCapacity bounds the in-process cache when no capacity is given
const DefaultMemoryCacheCapacity = 1024

// MemoryCacheProvider is a bounded, TTL-aware in-process cache.
// Once full, expired entries are swept and then the entry closest to
// expiry is evicted to make room.
type MemoryCacheProvider struct {
	hitCounter

	mu       sync.RWMutex
	entries  map[string]memoryEntry
	capacity int
	clock    clockwork.Clock
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

func NewMemoryCacheProvider() *MemoryCacheProvider {
	return NewMemoryCacheProviderWithClock(clockwork.NewRealClock())
}

// NewMemoryCacheProviderWithClock creates a memory cache whose expiry follows clock
func NewMemoryCacheProviderWithClock(clock clockwork.Clock) *MemoryCacheProvider {
	return NewBoundedMemoryCacheProvider(clock, DefaultMemoryCacheCapacity)
}

// NewBoundedMemoryCacheProvider creates a memory cache holding at most capacity entries
func NewBoundedMemoryCacheProvider(clock clockwork.Clock, capacity int) *MemoryCacheProvider {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if capacity <= 0 {
		capacity = DefaultMemoryCacheCapacity
	}
	return &MemoryCacheProvider{
		entries:  make(map[string]memoryEntry),
		capacity: capacity,
		clock:    clock,
	}
}

func (c *MemoryCacheProvider) Get(_ context.Context, key string) ([]byte, error) {
	if err := validateCacheKey(key); err != nil {
		return nil, err
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || entry.expired(c.clock.Now()) {
		c.RecordMiss()
		return nil, errors.NewNotFoundError("cache miss")
	}

	c.RecordHit()
	return entry.value, nil
}

func (c *MemoryCacheProvider) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if err := validateCacheEntry(key, value, ttl); err != nil {
		return err
	}

	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.capacity {
		c.makeRoom(now)
	}
	c.entries[key] = memoryEntry{value: value, expiresAt: now.Add(ttl)}
	return nil
}

// makeRoom must be called with mu held for writing.
func (c *MemoryCacheProvider) makeRoom(now time.Time) {
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.capacity {
		return
	}

	var victim string
	var soonest time.Time
	for k, e := range c.entries {
		if victim == "" || e.expiresAt.Before(soonest) {
			victim, soonest = k, e.expiresAt
		}
	}
	delete(c.entries, victim)
}

func (c *MemoryCacheProvider) Delete(_ context.Context, key string) error {
	if err := validateCacheKey(key); err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCacheProvider) Exists(_ context.Context, key string) (bool, error) {
	if err := validateCacheKey(key); err != nil {
		return false, err
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	return ok && !entry.expired(c.clock.Now()), nil
}

func (c *MemoryCacheProvider) Clear(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included
func (c *MemoryCacheProvider) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCacheProvider) GetStats() ports.CacheStats {
	return c.snapshot(c.clock.Now())
}
