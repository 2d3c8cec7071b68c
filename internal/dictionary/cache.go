package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/devtools-playground/internal/resilience"
	"github.com/noah-isme/devtools-playground/internal/store"
)

const cacheKeyPrefix = "dictionary:word:"

// Cache is a Redis read-through cache of stored entries. A nil *Cache, or
// one without a client, is disabled. An optional breaker stops calls to an
// unhealthy Redis; while it is open reads miss and writes are skipped.
type Cache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *resilience.Breaker
}

// NewCache constructs a cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// WithBreaker guards Redis calls with b.
func (c *Cache) WithBreaker(b *resilience.Breaker) *Cache {
	c.breaker = b
	return c
}

// Enabled reports whether lookups reach Redis.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get returns the cached entry for word. It reports whether the key existed.
func (c *Cache) Get(ctx context.Context, word string) (store.Entry, bool, error) {
	if !c.Enabled() || word == "" {
		return store.Entry{}, false, nil
	}
	var data []byte
	err := c.breaker.Do(ctx, func() error {
		var err error
		data, err = c.client.Get(ctx, cacheKeyPrefix+word).Bytes()
		return err
	}, isOutage)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return store.Entry{}, false, nil
		}
		return store.Entry{}, false, err
	}
	var entry store.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return store.Entry{}, false, err
	}
	return entry, true, nil
}

// Set stores entry with the configured TTL.
func (c *Cache) Set(ctx context.Context, entry store.Entry) error {
	if !c.Enabled() || entry.Word == "" {
		return nil
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.breaker.Do(ctx, func() error {
		return c.client.Set(ctx, cacheKeyPrefix+entry.Word, data, c.ttl).Err()
	}, isOutage)
}

func isOutage(err error) bool {
	return !errors.Is(err, redis.Nil)
}
