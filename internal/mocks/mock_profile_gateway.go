package mocks

import (
	"context"

	"github.com/you/estately/domain"
)

// MockProfileGateway implements domain.ProfileGateway for testing
type MockProfileGateway struct {
	GetProfileFunc    func(ctx context.Context) (*domain.Profile, error)
	UpdateProfileFunc func(ctx context.Context, p *domain.Profile) (*domain.Profile, error)

	GetProfileCalls int
}

// NewMockProfileGateway creates a new MockProfileGateway with default behaviors
func NewMockProfileGateway() *MockProfileGateway {
	return &MockProfileGateway{}
}

// GetProfile fetches the authenticated user's profile
func (m *MockProfileGateway) GetProfile(ctx context.Context) (*domain.Profile, error) {
	m.GetProfileCalls++
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx)
	}
	// Default behavior: a populated profile
	return &domain.Profile{Name: "Test User", Email: "test@example.com", ContactNo: "9876543210"}, nil
}

// UpdateProfile updates the authenticated user's profile
func (m *MockProfileGateway) UpdateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, p)
	}
	return p, nil
}

// Compile-time interface compliance verification
var _ domain.ProfileGateway = (*MockProfileGateway)(nil)
