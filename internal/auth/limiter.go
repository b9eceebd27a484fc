package auth

import (
	"context"
	"sync"
	"time"
)

// AttemptLimiter tracks failed login attempts per client key.
// Implementations decide the backing store; the login endpoint never does.
type AttemptLimiter interface {
	// IsLimited reports whether the key has exhausted its attempts
	// within the lockout window.
	IsLimited(ctx context.Context, key string) (bool, error)
	// RecordFailure counts a failed attempt against the key.
	RecordFailure(ctx context.Context, key string) error
	// Reset discards all attempt state for the key.
	Reset(ctx context.Context, key string) error
}

// LimiterConfig holds lockout behavior configuration
type LimiterConfig struct {
	MaxAttempts int
	Window      time.Duration
}

type attemptRecord struct {
	count       int
	lastAttempt time.Time
}

// MemoryLimiter is the in-process AttemptLimiter. State is per instance and
// lost on restart; a horizontally scaled deployment should use RedisLimiter
// so all instances share one view.
type MemoryLimiter struct {
	mu      sync.Mutex
	records map[string]*attemptRecord
	config  LimiterConfig

	now func() time.Time
}

// NewMemoryLimiter creates an in-memory limiter
func NewMemoryLimiter(config LimiterConfig) *MemoryLimiter {
	return &MemoryLimiter{
		records: make(map[string]*attemptRecord),
		config:  config,
		now:     time.Now,
	}
}

// IsLimited checks the key's record, discarding it first if the window has
// elapsed. A stale record is deleted outright, never decayed.
func (l *MemoryLimiter) IsLimited(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[key]
	if !ok {
		return false, nil
	}

	if l.now().Sub(rec.lastAttempt) >= l.config.Window {
		delete(l.records, key)
		return false, nil
	}

	return rec.count >= l.config.MaxAttempts, nil
}

// RecordFailure increments the key's count and refreshes its timestamp when
// the existing record is still within the window, else starts over at 1.
func (l *MemoryLimiter) RecordFailure(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.records[key]
	if !ok || now.Sub(rec.lastAttempt) >= l.config.Window {
		l.records[key] = &attemptRecord{count: 1, lastAttempt: now}
		return nil
	}

	rec.count++
	rec.lastAttempt = now
	return nil
}

// Reset clears the key's record. Called on successful login.
func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.records, key)
	l.mu.Unlock()
	return nil
}
