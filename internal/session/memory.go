package session

import (
	"context"
	"sync"
)

// MemoryStore хранит сессии в памяти процесса.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

// NewMemoryStore создаёт пустое хранилище в памяти.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (s *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = *sess
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
