package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

// Store is the subset of the go-redis API the cache needs.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// CacheService stores JSON-encoded values under a key prefix.
type CacheService struct {
	store  Store
	prefix string
}

func NewCacheService(store Store, prefix string) *CacheService {
	return &CacheService{store: store, prefix: prefix}
}

func (c *CacheService) Key(id string) string {
	return c.prefix + id
}

func (c *CacheService) Get(ctx context.Context, id string, dest interface{}) error {
	data, err := c.store.Get(ctx, c.Key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (c *CacheService) Set(ctx context.Context, id string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.store.Set(ctx, c.Key(id), string(data), ttl).Err()
}

// SetNX stores value only when the key is absent and reports whether it was written.
func (c *CacheService) SetNX(ctx context.Context, id string, value interface{}, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.store.SetNX(ctx, c.Key(id), string(data), ttl).Result()
}
