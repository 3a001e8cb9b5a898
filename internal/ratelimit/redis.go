package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists timestamps in redis so several API instances share one
// limit per key. The limiter lock is per process; across instances the check
// is best effort.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// OpenRedisStore connects to the server at url and verifies it with PING.
func OpenRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisStore(rdb), nil
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]time.Time, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeStamps(raw)
}

func (s *RedisStore) Save(ctx context.Context, key string, stamps []time.Time, ttl time.Duration) error {
	if len(stamps) == 0 {
		return s.rdb.Del(ctx, keyPrefix+key).Err()
	}
	raw, err := encodeStamps(stamps)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+key, raw, ttl).Err()
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
