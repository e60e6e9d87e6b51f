package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Redis is the shared-cache flavour of PageCache. Invalidation bumps a
// namespace version instead of scanning keys; stale entries expire on
// their own TTL.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(cfg RedisConfig) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ttl := cfg.TTL

	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Redis{rdb: rdb, ttl: ttl}
}

const versionKey = "listcache:version"

func (c *Redis) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Redis) Close() error {
	return c.rdb.Close()
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.rdb.Get(ctx, c.versioned(ctx, key)).Bytes()

	if err != nil {
		return nil, false
	}

	return val, true
}

func (c *Redis) Set(ctx context.Context, key string, val []byte) {
	_ = c.rdb.Set(ctx, c.versioned(ctx, key), val, c.ttl).Err()
}

func (c *Redis) Invalidate(ctx context.Context) {
	_ = c.rdb.Incr(ctx, versionKey).Err()
}

func (c *Redis) versioned(ctx context.Context, key string) string {
	ver, err := c.rdb.Get(ctx, versionKey).Int64()

	if err != nil {
		ver = 0
	}

	return fmt.Sprintf("v%d:%s", ver, key)
}
