// Package cache implements the read-through entity cache on Redis. The cache
// is strictly an optimization: every failure degrades to a miss and never
// fails the request, and a nil Redis client disables caching entirely.
package cache

import (
	"context"
	"time"

	"github.com/mosikk/nosql-airbnb/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient instantiates the process-wide Redis client and verifies it
// with a short ping. Returns nil when the server is unreachable; callers
// degrade gracefully by running uncached.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

// Store caches serialized entities keyed per entity kind with a single TTL.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewStore creates a Store. A nil Redis client yields a disabled cache where
// every Get is a miss and Set/Delete are no-ops.
func NewStore(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{rdb: rdb, ttl: ttl, logger: logger}
}

// Get probes the cache. The second return is false on miss, on a disabled
// cache, and on any cache failure.
func (s *Store) Get(ctx context.Context, kind, id string) ([]byte, bool) {
	if s.rdb == nil {
		return nil, false
	}
	val, err := s.rdb.Get(ctx, key(kind, id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("cache get failed, treating as miss",
				zap.String("kind", kind),
				zap.String("id", id),
				zap.Error(err),
			)
		}
		return nil, false
	}
	return val, true
}

// Set populates the cache entry with the configured TTL. Failures are logged
// and swallowed.
func (s *Store) Set(ctx context.Context, kind, id string, value []byte) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.SetEx(ctx, key(kind, id), value, s.ttl).Err(); err != nil {
		s.logger.Warn("cache set failed",
			zap.String("kind", kind),
			zap.String("id", id),
			zap.Error(err),
		)
	}
}

// Delete removes the cache entry. Failures are logged and swallowed.
func (s *Store) Delete(ctx context.Context, kind, id string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, key(kind, id)).Err(); err != nil {
		s.logger.Warn("cache delete failed",
			zap.String("kind", kind),
			zap.String("id", id),
			zap.Error(err),
		)
	}
}

func key(kind, id string) string { return kind + ":" + id }
