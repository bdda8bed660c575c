package mocks

import "github.com/you/estately/domain"

// MockTokenInspector implements domain.TokenInspector for testing
type MockTokenInspector struct {
	RoleOfFunc func(token string) (domain.Role, error)
}

// NewMockTokenInspector creates a new MockTokenInspector with default behaviors
func NewMockTokenInspector() *MockTokenInspector {
	return &MockTokenInspector{}
}

// RoleOf decodes the role hint from a token
func (m *MockTokenInspector) RoleOf(token string) (domain.Role, error) {
	if m.RoleOfFunc != nil {
		return m.RoleOfFunc(token)
	}
	// Default behavior: plain user
	return domain.RoleUser, nil
}

// Compile-time interface compliance verification
var _ domain.TokenInspector = (*MockTokenInspector)(nil)
