package auth

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const lockoutKeyPrefix = "lockout:"

// RedisLimiter is the shared AttemptLimiter for multi-instance deployments.
// Each failure bumps a counter whose TTL is refreshed to the full window, so
// the lockout behaves the same as MemoryLimiter's whole-record expiry.
type RedisLimiter struct {
	client *redis.Client
	config LimiterConfig
}

// NewRedisLimiter creates a Redis-backed limiter
func NewRedisLimiter(client *redis.Client, config LimiterConfig) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		config: config,
	}
}

func (l *RedisLimiter) IsLimited(ctx context.Context, key string) (bool, error) {
	count, err := l.client.Get(ctx, lockoutKeyPrefix+key).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read attempt count: %w", err)
	}
	return count >= l.config.MaxAttempts, nil
}

func (l *RedisLimiter) RecordFailure(ctx context.Context, key string) error {
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, lockoutKeyPrefix+key)
	pipe.Expire(ctx, lockoutKeyPrefix+key, l.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	return nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, lockoutKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to reset attempts: %w", err)
	}
	return nil
}
