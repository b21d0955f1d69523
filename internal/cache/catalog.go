package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ben/workshop-manager/internal/domain"
	"github.com/redis/go-redis/v9"
)

const catalogKey = "workshop:equipment_catalog"

// NewRedisClient connects to Redis and pings it with a short timeout.
// Returns nil when the address is empty or the server is unreachable;
// callers degrade gracefully by running without a cache.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

// CatalogCache holds the equipment catalog listing in Redis with a TTL.
// A nil cache (or a cache built over a nil client) is valid and always
// misses, so every path works without Redis.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if client == nil {
		return nil
	}
	return &CatalogCache{client: client, ttl: ttl}
}

func (c *CatalogCache) Get(ctx context.Context) ([]*domain.EquipmentType, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		return nil, false
	}
	var types []*domain.EquipmentType
	if err := json.Unmarshal(data, &types); err != nil {
		return nil, false
	}
	return types, true
}

func (c *CatalogCache) Set(ctx context.Context, types []*domain.EquipmentType) {
	if c == nil {
		return
	}
	data, err := json.Marshal(types)
	if err != nil {
		return
	}
	c.client.Set(ctx, catalogKey, data, c.ttl)
}

func (c *CatalogCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	c.client.Del(ctx, catalogKey)
}
