package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"animetracker/internal/catalog"
	"animetracker/internal/domain"
)

const keyPrefix = "animetracker:catalog:"

// maxAiringTTL bounds how stale a countdown may get.
const maxAiringTTL = 5 * time.Minute

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens a Redis client and checks that the server answers.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}

// Stats counts cache traffic since construction.
type Stats struct {
	Hits   int64
	Misses int64
	Sets   int64
}

// Cached serves catalog answers from Redis and asks the wrapped source on
// a miss. Redis trouble is logged and never fails a lookup.
type Cached struct {
	source catalog.Source
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	stats  struct {
		hits   atomic.Int64
		misses atomic.Int64
		sets   atomic.Int64
	}
}

func New(source catalog.Source, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cached {
	return &Cached{
		source: source,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "catalog_cache"),
	}
}

func (c *Cached) Search(ctx context.Context, title string) ([]domain.CatalogItem, error) {
	key := "search:" + strings.ToLower(strings.TrimSpace(title))
	return fetch(ctx, c, key, c.ttl, func() ([]domain.CatalogItem, error) {
		return c.source.Search(ctx, title)
	})
}

func (c *Cached) Details(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	return fetch(ctx, c, fmt.Sprintf("details:%d", id), c.ttl, func() (*domain.CatalogItem, error) {
		return c.source.Details(ctx, id)
	})
}

func (c *Cached) Recommendations(ctx context.Context, id int64) ([]domain.CatalogItem, error) {
	return fetch(ctx, c, fmt.Sprintf("recommendations:%d", id), c.ttl, func() ([]domain.CatalogItem, error) {
		return c.source.Recommendations(ctx, id)
	})
}

func (c *Cached) Airing(ctx context.Context) ([]domain.CatalogItem, error) {
	return fetch(ctx, c, "airing", min(c.ttl, maxAiringTTL), func() ([]domain.CatalogItem, error) {
		return c.source.Airing(ctx)
	})
}

// Close releases the Redis client. The wrapped source is not closed.
func (c *Cached) Close() error {
	return c.client.Close()
}

func (c *Cached) Stats() Stats {
	return Stats{
		Hits:   c.stats.hits.Load(),
		Misses: c.stats.misses.Load(),
		Sets:   c.stats.sets.Load(),
	}
}

// fetch returns the cached value under key or loads and stores it.
// Failed loads are never cached.
func fetch[T any](ctx context.Context, c *Cached, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	key = keyPrefix + key

	if cached, ok := get[T](ctx, c, key); ok {
		return cached, nil
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	c.set(ctx, key, value, ttl)
	return value, nil
}

func get[T any](ctx context.Context, c *Cached, key string) (T, bool) {
	var value T

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.stats.misses.Add(1)
		return value, false
	}
	if err != nil {
		c.logger.Warn("redis get failed", "key", key, "error", err)
		c.stats.misses.Add(1)
		return value, false
	}

	if err := json.Unmarshal(data, &value); err != nil {
		c.logger.Warn("json unmarshal failed", "key", key, "error", err)
		c.stats.misses.Add(1)
		return value, false
	}

	c.stats.hits.Add(1)
	return value, true
}

func (c *Cached) set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("json marshal failed", "key", key, "error", err)
		return
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", "key", key, "error", err)
		return
	}

	c.stats.sets.Add(1)
}
