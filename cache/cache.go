package cache

import (
	"context"
	"errors"
	"time"

	redis_db "github.com/auditdesk/auditdesk/internal/redis-db"

	"github.com/auditdesk/auditdesk/config"

	"github.com/go-redis/cache/v9"
)

type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, data interface{}) error
	Delete(ctx context.Context, key string) error
}

// NewCache builds the snapshot cache from configuration. It returns
// (nil, nil) when no Redis address is configured; the dashboard then simply
// starts cold.
func NewCache() (Cache, error) {
	cfg, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	if cfg.Redis.Dns == "" {
		return nil, nil
	}
	ca, err := newRedisCache(cfg.Redis.Dns, cfg.Redis.SkipTLSVerify)
	if err != nil {
		return nil, err
	}
	return ca, nil
}

const cacheSize = 1000

type RedisCache struct {
	cache *cache.Cache
}

func newRedisCache(address string, skipTLSVerify bool) (*RedisCache, error) {
	client, err := redis_db.NewRedisClient(address, skipTLSVerify)
	if err != nil {
		return nil, err
	}

	c := cache.New(&cache.Options{
		Redis:      client.Client(),
		LocalCache: cache.NewTinyLFU(cacheSize, 1*time.Minute),
	})

	r := &RedisCache{cache: c}

	return r, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	return r.cache.Set(&cache.Item{
		Ctx:   ctx,
		Key:   key,
		Value: data,
		TTL:   ttl,
	})
}

func (r *RedisCache) Get(ctx context.Context, key string, data interface{}) error {
	err := r.cache.Get(ctx, key, &data)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil
	}

	if err != nil {
		return err
	}

	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.cache.Delete(ctx, key)
}
