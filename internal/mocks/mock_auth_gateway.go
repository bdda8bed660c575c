package mocks

import (
	"context"

	"github.com/you/estately/domain"
)

// MockAuthGateway implements domain.AuthGateway for testing
type MockAuthGateway struct {
	StartAuthFunc func(ctx context.Context, contactNo string) (domain.Classification, error)
	VerifyOTPFunc func(ctx context.Context, contactNo, otp string) (domain.VerifyOutcome, error)
	SignInFunc    func(ctx context.Context, contactNo string) (*domain.TokenGrant, error)
	SignUpFunc    func(ctx context.Context, data domain.SignupData) (*domain.TokenGrant, error)

	// Call counters for asserting composition and short-circuiting
	StartAuthCalls int
	VerifyOTPCalls int
	SignInCalls    int
	SignUpCalls    int
}

// NewMockAuthGateway creates a new MockAuthGateway with default behaviors
func NewMockAuthGateway() *MockAuthGateway {
	return &MockAuthGateway{}
}

// StartAuth classifies a contact number
func (m *MockAuthGateway) StartAuth(ctx context.Context, contactNo string) (domain.Classification, error) {
	m.StartAuthCalls++
	if m.StartAuthFunc != nil {
		return m.StartAuthFunc(ctx, contactNo)
	}
	// Default behavior: existing user
	return domain.ClassificationLogin, nil
}

// VerifyOTP checks a one-time code
func (m *MockAuthGateway) VerifyOTP(ctx context.Context, contactNo, otp string) (domain.VerifyOutcome, error) {
	m.VerifyOTPCalls++
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, contactNo, otp)
	}
	// Default behavior: proceed to login
	return domain.ProceedToLogin, nil
}

// SignIn completes login for a verified contact number
func (m *MockAuthGateway) SignIn(ctx context.Context, contactNo string) (*domain.TokenGrant, error) {
	m.SignInCalls++
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, contactNo)
	}
	// Default behavior: grant a token
	return &domain.TokenGrant{JWT: DefaultTestToken, Role: domain.RoleUser}, nil
}

// SignUp completes registration for a verified contact number
func (m *MockAuthGateway) SignUp(ctx context.Context, data domain.SignupData) (*domain.TokenGrant, error) {
	m.SignUpCalls++
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, data)
	}
	// Default behavior: grant a token
	return &domain.TokenGrant{JWT: DefaultTestToken, Role: domain.RoleUser}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthGateway = (*MockAuthGateway)(nil)
