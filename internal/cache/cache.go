package cache

import (
	"context"
	"sync"
	"time"

	"github.com/agroshield/claim-validation-service/internal/models"
)

// Cache stores observations keyed by location|date|hour. Historical
// observations never change once published, so entries are safe to keep for
// the full TTL.
type Cache interface {
	Get(ctx context.Context, key string) (models.Observation, bool, error)
	Set(ctx context.Context, key string, value models.Observation, ttl time.Duration) error
}

// InMemoryCache implements Cache with a map and TTL-based expiration.
// Expired entries are removed on access. Safe for concurrent use; window
// builds fetch days in parallel.
type InMemoryCache struct {
	mu   sync.Mutex
	data map[string]cacheEntry
}

type cacheEntry struct {
	value     models.Observation
	expiresAt time.Time
}

// NewInMemoryCache creates a new in-memory cache instance.
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		data: make(map[string]cacheEntry),
	}
}

// Get returns the cached observation for the key if present and not expired.
func (c *InMemoryCache) Get(ctx context.Context, key string) (models.Observation, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.data[key]
	if !ok {
		return models.Observation{}, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.data, key)
		return models.Observation{}, false, nil
	}
	return entry.value, true, nil
}

// Set stores an observation with the specified TTL.
func (c *InMemoryCache) Set(ctx context.Context, key string, value models.Observation, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}
