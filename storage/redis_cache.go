package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"airbnb-rooms-scraper/models"
	"airbnb-rooms-scraper/utils"
)

const cacheKeyPrefix = "airbnb:room:"

// RedisDocumentCache keeps raw room documents in Redis for a limited time
type RedisDocumentCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *utils.Logger
}

// NewRedisDocumentCache creates a new RedisDocumentCache
func NewRedisDocumentCache(rdb *redis.Client, ttl time.Duration, logger *utils.Logger) *RedisDocumentCache {
	return &RedisDocumentCache{rdb: rdb, ttl: ttl, logger: logger}
}

// NewRedisClient connects to addr and pings it
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func (c *RedisDocumentCache) Get(ctx context.Context, key string) (models.RawListingDocument, bool, error) {
	data, err := c.rdb.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc models.RawListingDocument
	if err := dec.Decode(&doc); err != nil {
		// stale or foreign value, treat as a miss
		c.logger.Warn("Dropping undecodable cache entry %s: %v", key, err)
		_ = c.rdb.Del(ctx, cacheKeyPrefix+key).Err()
		return nil, false, nil
	}
	return doc, true, nil
}

func (c *RedisDocumentCache) Set(ctx context.Context, key string, doc models.RawListingDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := c.rdb.Set(ctx, cacheKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisDocumentCache) Close() error {
	return c.rdb.Close()
}
