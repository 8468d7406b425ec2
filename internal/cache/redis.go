package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/actuallystonmai/newsletter-finder/internal/domain"
)

const (
	defaultTTL = 10 * time.Minute
	catalogKey = "catalog:newsletters:v1"
)

// Cache keeps a snapshot of the newsletter catalog so replicas do not query
// Postgres on every recommendation.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// Get the catalog snapshot; found is false on a miss
func (c *Cache) GetCatalog(ctx context.Context) ([]domain.Newsletter, bool, error) {
	val, err := c.client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get catalog from cache: %w", err)
	}

	var items []domain.Newsletter
	if err := json.Unmarshal(val, &items); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal catalog %s: %w", catalogKey, err)
	}
	return items, true, nil
}

// Store the catalog snapshot
func (c *Cache) SetCatalog(ctx context.Context, items []domain.Newsletter) error {
	val, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := c.client.Set(ctx, catalogKey, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set catalog in cache: %w", err)
	}
	return nil
}

// Drop the snapshot: used after the catalog is reseeded
func (c *Cache) InvalidateCatalog(ctx context.Context) error {
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", catalogKey, err)
	}
	return nil
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
