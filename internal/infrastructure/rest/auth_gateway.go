package rest

import (
	"context"
	"errors"
	"fmt"

	"github.com/you/estately/domain"
)

// AuthGatewayImpl implements domain.AuthGateway over the passwordless auth
// endpoints.
type AuthGatewayImpl struct {
	client *Client
}

// NewAuthGateway creates a new auth gateway.
func NewAuthGateway(client *Client) domain.AuthGateway {
	return &AuthGatewayImpl{client: client}
}

type contactRequest struct {
	ContactNo string `json:"contactNo"`
}

type verifyOTPRequest struct {
	ContactNo string `json:"contactNo"`
	OTP       string `json:"otp"`
}

// StartAuth implements domain.AuthGateway.
func (g *AuthGatewayImpl) StartAuth(ctx context.Context, contactNo string) (domain.Classification, error) {
	var reply string
	if err := g.client.Post(ctx, "/auth/start", contactRequest{ContactNo: contactNo}, &reply); err != nil {
		return "", fmt.Errorf("start auth: %w", err)
	}

	switch domain.Classification(reply) {
	case domain.ClassificationSignup, domain.ClassificationLogin:
		return domain.Classification(reply), nil
	default:
		return "", fmt.Errorf("%w: classification %q", domain.ErrUnexpectedReply, reply)
	}
}

// VerifyOTP implements domain.AuthGateway.
func (g *AuthGatewayImpl) VerifyOTP(ctx context.Context, contactNo, otp string) (domain.VerifyOutcome, error) {
	var reply string
	if err := g.client.Post(ctx, "/auth/verify-otp", verifyOTPRequest{ContactNo: contactNo, OTP: otp}, &reply); err != nil {
		return "", fmt.Errorf("verify otp: %w", err)
	}

	switch domain.VerifyOutcome(reply) {
	case domain.ProceedToSignup, domain.ProceedToLogin:
		return domain.VerifyOutcome(reply), nil
	default:
		return "", fmt.Errorf("%w: outcome %q", domain.ErrUnexpectedReply, reply)
	}
}

// SignIn implements domain.AuthGateway. A 403 here means the account is
// locked, not a generic permission failure.
func (g *AuthGatewayImpl) SignIn(ctx context.Context, contactNo string) (*domain.TokenGrant, error) {
	var grant domain.TokenGrant
	if err := g.client.Post(ctx, "/signin", contactRequest{ContactNo: contactNo}, &grant); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return nil, fmt.Errorf("sign in: %w", domain.ErrAccountLocked)
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if grant.JWT == "" {
		return nil, fmt.Errorf("sign in: %w", domain.ErrNoToken)
	}
	return &grant, nil
}

// SignUp implements domain.AuthGateway.
func (g *AuthGatewayImpl) SignUp(ctx context.Context, data domain.SignupData) (*domain.TokenGrant, error) {
	var grant domain.TokenGrant
	if err := g.client.Post(ctx, "/signup", data, &grant); err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	if grant.JWT == "" {
		return nil, fmt.Errorf("sign up: %w", domain.ErrNoToken)
	}
	return &grant, nil
}

// Compile-time interface compliance verification
var _ domain.AuthGateway = (*AuthGatewayImpl)(nil)
