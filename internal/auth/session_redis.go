package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore shares sessions across instances. Redis owns expiry via
// key TTL, so there is no lazy sweep.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a Redis-backed session store with the given TTL
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisSessionStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, sessionKeyPrefix+token, "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Validate(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to validate session: %w", err)
	}
	return n > 0, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
