package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/secondchance/catalog-service/internal/catalog/domain"
)

const itemTTL = 1 * time.Hour

// ItemCache is a redis read-through cache for single-item lookups. Misses
// and cache failures both fall back to the store.
type ItemCache struct {
	client *redis.Client
}

func NewItemCache(addr string) (*ItemCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &ItemCache{client: client}, nil
}

func itemKey(id int64) string {
	return fmt.Sprintf("item:%d", id)
}

func (c *ItemCache) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	data, err := c.client.Get(ctx, itemKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	var item domain.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *ItemCache) SetItem(ctx context.Context, item *domain.Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, itemKey(item.ID), data, itemTTL).Err()
}

func (c *ItemCache) DeleteItem(ctx context.Context, id int64) error {
	return c.client.Del(ctx, itemKey(id)).Err()
}

func (c *ItemCache) Close() error {
	return c.client.Close()
}
