package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"asset-tracker/internal/config"
	"asset-tracker/internal/models"
	"asset-tracker/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Keys holding the raw JSON of the list endpoints.
const (
	KeyAssets     = "inventory:assets:all"
	KeyCategories = "inventory:categories:all"
)

var (
	client *redis.Client
	once   sync.Once
)

// Client returns the global Redis client (initialized on first use).
// It returns nil when REDIS_URL is empty or the server is unreachable.
func Client(ctx context.Context) *redis.Client {
	once.Do(func() {
		cfg := config.Get()
		if cfg.RedisURL == "" {
			logger.Info(ctx, "Redis disabled (REDIS_URL not set)")
			return
		}
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error(ctx, "Invalid REDIS_URL", "error", err)
			return
		}
		opts.PoolSize = cfg.RedisPool
		c := redis.NewClient(opts)
		if err := c.Ping(ctx).Err(); err != nil {
			logger.Error(ctx, "Redis ping failed", "error", err)
			_ = c.Close()
			return
		}
		client = c
		logger.Info(ctx, "Redis client initialized", "pool_size", cfg.RedisPool)
	})
	return client
}

// Lists caches the serialized list responses. A Lists with a nil client is a no-op cache.
type Lists struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLists(rdb *redis.Client, ttl time.Duration) *Lists {
	return &Lists{rdb: rdb, ttl: ttl}
}

// Enabled reports whether a Redis client is attached.
func (l *Lists) Enabled() bool {
	return l != nil && l.rdb != nil
}

// Get returns the cached bytes for key. Misses and errors both report false.
func (l *Lists) Get(ctx context.Context, key string) ([]byte, bool) {
	if !l.Enabled() {
		return nil, false
	}
	b, err := l.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Debug(ctx, "Redis get failed", "error", err, "key", key)
		return nil, false
	}
	return b, true
}

// Generation returns the invalidation counter of key. Read it before loading the
// data to cache and pass it to SetIfGeneration. ok is false when the cache is off
// or Redis fails, in which case nothing should be stored.
func (l *Lists) Generation(ctx context.Context, key string) (gen int64, ok bool) {
	if !l.Enabled() {
		return 0, false
	}
	gen, err := l.rdb.Get(ctx, generationKey(key)).Int64()
	if err == redis.Nil {
		return 0, true
	}
	if err != nil {
		logger.Debug(ctx, "Redis generation read failed", "error", err, "key", key)
		return 0, false
	}
	return gen, true
}

// setIfGeneration stores ARGV[1] under KEYS[1] only while KEYS[2] still holds ARGV[2].
// ARGV[3] is the TTL in milliseconds; 0 keeps the value until invalidated.
var setIfGeneration = redis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[2] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

// SetIfGeneration stores b under key with the configured TTL unless key was
// invalidated after gen was read. A load that raced a mutation is dropped.
func (l *Lists) SetIfGeneration(ctx context.Context, key string, b []byte, gen int64) {
	if !l.Enabled() {
		return
	}
	keys := []string{key, generationKey(key)}
	stored, err := setIfGeneration.Run(ctx, l.rdb, keys, b, strconv.FormatInt(gen, 10), l.ttl.Milliseconds()).Int()
	if err != nil {
		logger.Debug(ctx, "Redis set failed", "error", err, "key", key)
		return
	}
	if stored == 0 {
		logger.Debug(ctx, "Cache write skipped after invalidation", "key", key, "generation", gen)
	}
}

// Invalidate deletes the list keys affected by a change to entity and bumps their
// generations so loads already in flight cannot store what they read.
func (l *Lists) Invalidate(ctx context.Context, entity string) {
	if !l.Enabled() {
		return
	}
	keys := KeysFor(entity)
	if len(keys) == 0 {
		return
	}
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range keys {
			pipe.Incr(ctx, generationKey(k))
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		logger.Warn(ctx, "Redis invalidate failed", "error", err, "keys", keys)
	}
}

// Ping reports whether Redis answers. A disabled cache is always healthy.
func (l *Lists) Ping(ctx context.Context) error {
	if !l.Enabled() {
		return nil
	}
	return l.rdb.Ping(ctx).Err()
}

func generationKey(key string) string { return key + ":gen" }

// KeysFor maps an entity to the cached lists that embed it. Category changes also
// invalidate assets because the asset list carries the joined category name.
func KeysFor(entity string) []string {
	switch entity {
	case models.EntityAsset:
		return []string{KeyAssets}
	case models.EntityCategory:
		return []string{KeyCategories, KeyAssets}
	default:
		return nil
	}
}
