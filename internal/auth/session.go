package auth

import (
	"context"
	"sync"
	"time"
)

// SessionStore holds issued session tokens server-side. The login endpoint
// saves a token here; RequireSession checks membership; logout deletes.
type SessionStore interface {
	Save(ctx context.Context, token string) error
	Validate(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

// MemorySessionStore keeps sessions in process memory. Expiry is lazy: a
// token is only discarded when a later call touches it.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time
	ttl      time.Duration

	now func() time.Time
}

// NewMemorySessionStore creates an in-memory session store with the given TTL
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]time.Time),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	s.sessions[token] = s.now().Add(s.ttl)
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Validate(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.sessions[token]
	if !ok {
		return false, nil
	}
	if s.now().After(expiresAt) {
		delete(s.sessions, token)
		return false, nil
	}
	return true, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
