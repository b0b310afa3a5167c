package session

import "sync"

// MemoryStore holds a session in memory. Used in tests and anywhere
// persistence across invocations is not wanted.
type MemoryStore struct {
	mu      sync.Mutex
	current Session
	saved   bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored session, or a zero Session when none was saved.
func (s *MemoryStore) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return Session{}, nil
	}
	return s.current, nil
}

// Save replaces the stored session.
func (s *MemoryStore) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sess
	s.saved = true
	return nil
}

// Clear removes the stored session.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Session{}
	s.saved = false
	return nil
}

// Verify interface compliance.
var _ Store = (*MemoryStore)(nil)
