package credstore

import (
	"sync"

	"github.com/you/estately/domain"
)

// MemoryStore implements domain.CredentialStore in memory, for tests and for
// ephemeral sessions that should not survive the process.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements domain.CredentialStore.
func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// Save implements domain.CredentialStore.
func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear implements domain.CredentialStore.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// Compile-time interface compliance verification
var _ domain.CredentialStore = (*MemoryStore)(nil)
