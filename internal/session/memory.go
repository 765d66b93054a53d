package session

import (
	"context"
	"sync"
)

// MemoryStore keeps sessions in process memory. Used for development and
// tests; sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
	}
}

func (s *MemoryStore) Get(_ context.Context, sid string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sid]
	if !ok {
		return nil, ErrNotFound
	}
	// Copy so callers cannot mutate the stored value in place
	out := sess
	return &out, nil
}

func (s *MemoryStore) Put(_ context.Context, sid string, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sid] = *sess
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sid)
	return nil
}
