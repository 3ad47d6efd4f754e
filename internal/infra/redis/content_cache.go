package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"universidad-sunshine/internal/domain"
	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/usecase"
)

var _ usecase.PublicContentCache = (*ContentCache)(nil)

// ContentCache holds the per-country public content snapshots. A short TTL
// bounds staleness even when invalidation is missed.
type ContentCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewContentCache(client RedisClient, ttl time.Duration) *ContentCache {
	return &ContentCache{client: client, ttl: ttl}
}

func contentKey(code string) string {
	return fmt.Sprintf("public_content:%s", code)
}

func (c *ContentCache) Get(ctx context.Context, code string) ([]*model.ContentWithRelations, error) {
	data, err := c.client.Get(ctx, contentKey(code))
	if err != nil {
		if isNil(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var items []*model.ContentWithRelations
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *ContentCache) Set(ctx context.Context, code string, items []*model.ContentWithRelations) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, contentKey(code), data, c.ttl)
}

func (c *ContentCache) Invalidate(ctx context.Context) error {
	keys, err := c.client.Keys(ctx, contentKey("*"))
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...)
}
