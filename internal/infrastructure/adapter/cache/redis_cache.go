package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
)

const keyPrefix = "referral:code:"

// RedisOptions configures the redis connection
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisReferralCodeCache keeps code -> owner lookups in redis
type RedisReferralCodeCache struct {
	client *redis.Client
	ttl    time.Duration
	logger coreport.Logger
}

var _ cache.ReferralCodeCache = (*RedisReferralCodeCache)(nil)

// NewRedisReferralCodeCache connects to redis and verifies the connection
func NewRedisReferralCodeCache(ctx context.Context, opts RedisOptions, logger coreport.Logger) (*RedisReferralCodeCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", opts.Addr, err)
	}

	return newRedisReferralCodeCache(client, opts.TTL, logger), nil
}

func newRedisReferralCodeCache(client *redis.Client, ttl time.Duration, logger coreport.Logger) *RedisReferralCodeCache {
	return &RedisReferralCodeCache{client: client, ttl: ttl, logger: logger.Named("referral_cache")}
}

func cacheKey(code string) string {
	return keyPrefix + code
}

func (c *RedisReferralCodeCache) Get(ctx context.Context, code string) (uint64, bool, error) {
	userID, err := c.client.Get(ctx, cacheKey(code)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		c.logger.Warn("Referral code cache read failed", map[string]any{"code": code, "error": err.Error()})
		return 0, false, err
	}
	return userID, true, nil
}

func (c *RedisReferralCodeCache) Set(ctx context.Context, code string, userID uint64) error {
	if err := c.client.Set(ctx, cacheKey(code), userID, c.ttl).Err(); err != nil {
		c.logger.Warn("Referral code cache write failed", map[string]any{"code": code, "error": err.Error()})
		return err
	}
	return nil
}

func (c *RedisReferralCodeCache) Delete(ctx context.Context, code string) error {
	return c.client.Del(ctx, cacheKey(code)).Err()
}

func (c *RedisReferralCodeCache) Close() error {
	return c.client.Close()
}

// NoopReferralCodeCache always misses. Used when no redis address is configured.
type NoopReferralCodeCache struct{}

var _ cache.ReferralCodeCache = NoopReferralCodeCache{}

func (NoopReferralCodeCache) Get(context.Context, string) (uint64, bool, error) {
	return 0, false, nil
}

func (NoopReferralCodeCache) Set(context.Context, string, uint64) error { return nil }

func (NoopReferralCodeCache) Delete(context.Context, string) error { return nil }

func (NoopReferralCodeCache) Close() error { return nil }
