package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pastime-app/backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// CountTTL bounds how long a cached pending-request count may serve
// reads before the DB is consulted again.
const CountTTL = time.Hour

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

// KeyForRequestCount generates the Redis key for a user's pending
// friend-request count.
func (c *RedisCache) KeyForRequestCount(userID uint64) string {
	return fmt.Sprintf("requests:count:%d", userID)
}

func (c *RedisCache) UpdateRequestCount(ctx context.Context, userID uint64, count int64) error {
	key := c.KeyForRequestCount(userID)
	// Always refresh TTL when updating
	return c.Set(ctx, key, count, CountTTL)
}

// GetRequestCount returns the cached count for a user. The second return
// reports whether the key was present; a miss is not an error.
func (c *RedisCache) GetRequestCount(ctx context.Context, userID uint64) (int64, bool, error) {
	key := c.KeyForRequestCount(userID)
	val, err := c.Get(ctx, key)
	if errors.Is(err, redis.Nil) {
		return 0, false, nil // cache miss
	} else if err != nil {
		return 0, false, err
	}
	// refresh TTL on access
	_ = c.Client.Expire(ctx, key, CountTTL).Err()
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}
