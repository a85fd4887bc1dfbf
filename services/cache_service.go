package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/soleworks/soleworks-api/models"
)

const orderCacheTTL = 5 * time.Minute

// OrderCache is a read-through Redis cache for single-order lookups.
// When no address is configured every operation is a no-op, and any Redis
// failure degrades to the database.
type OrderCache struct {
	client *redis.Client
}

// NewOrderCache creates a cache against the given Redis address.
// A nil-client cache is returned when addr is empty.
func NewOrderCache(addr, password string) *OrderCache {
	if addr == "" {
		return &OrderCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	return &OrderCache{client: client}
}

// Get returns the cached order for id, if present
func (c *OrderCache) Get(ctx context.Context, id uint) (*models.Order, bool) {
	if c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, orderKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.L().Warn("order cache read failed", zap.Uint("id", id), zap.Error(err))
		}
		return nil, false
	}

	var order models.Order
	if err := json.Unmarshal(payload, &order); err != nil {
		zap.L().Warn("order cache entry corrupt", zap.Uint("id", id), zap.Error(err))
		return nil, false
	}
	return &order, true
}

// Set stores an order in the cache
func (c *OrderCache) Set(ctx context.Context, order *models.Order) {
	if c.client == nil {
		return
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, orderKey(order.ID), payload, orderCacheTTL).Err(); err != nil {
		zap.L().Warn("order cache write failed", zap.Uint("id", order.ID), zap.Error(err))
	}
}

// Invalidate drops the cached entry for an order
func (c *OrderCache) Invalidate(ctx context.Context, id uint) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, orderKey(id)).Err(); err != nil {
		zap.L().Warn("order cache invalidation failed", zap.Uint("id", id), zap.Error(err))
	}
}

// Close closes the Redis connection
func (c *OrderCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func orderKey(id uint) string {
	return fmt.Sprintf("order:%d", id)
}
