package cache

import (
	"context"
	"time"

	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore is the Redis-backed half of the cache manager.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg *config.CacheConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

// Get returns the value for key, or ("", false) on any miss or error.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			common.LogWarn("redis get failed", zap.Error(err), zap.String("key", key))
		}
		return "", false
	}
	return val, true
}

// Set stores the value under key with the given TTL. Failures are logged and
// swallowed; the in-memory store still holds the value.
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		common.LogWarn("redis set failed", zap.Error(err), zap.String("key", key))
	}
}

// Close releases the client.
func (s *RedisStore) Close() {
	if err := s.client.Close(); err != nil {
		common.LogWarn("redis close failed", zap.Error(err))
	}
}
