package mocks

import "github.com/you/estately/domain"

// MockCredentialStore implements domain.CredentialStore for testing
type MockCredentialStore struct {
	LoadFunc  func() (string, error)
	SaveFunc  func(token string) error
	ClearFunc func() error

	// Stored mirrors the last saved value when the default behaviors run
	Stored     string
	SaveCalls  int
	ClearCalls int
}

// NewMockCredentialStore creates a new MockCredentialStore with default behaviors
func NewMockCredentialStore() *MockCredentialStore {
	return &MockCredentialStore{}
}

// Load reads the stored token
func (m *MockCredentialStore) Load() (string, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return m.Stored, nil
}

// Save persists a token
func (m *MockCredentialStore) Save(token string) error {
	m.SaveCalls++
	if m.SaveFunc != nil {
		return m.SaveFunc(token)
	}
	m.Stored = token
	return nil
}

// Clear removes the stored token
func (m *MockCredentialStore) Clear() error {
	m.ClearCalls++
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	m.Stored = ""
	return nil
}

// Compile-time interface compliance verification
var _ domain.CredentialStore = (*MockCredentialStore)(nil)
