package rest

import (
	"context"
	"fmt"

	"github.com/you/estately/domain"
)

// UserGatewayImpl implements domain.ProfileGateway over /users/profile.
type UserGatewayImpl struct {
	client *Client
}

// NewUserGateway creates a new profile gateway.
func NewUserGateway(client *Client) domain.ProfileGateway {
	return &UserGatewayImpl{client: client}
}

// GetProfile implements domain.ProfileGateway.
func (g *UserGatewayImpl) GetProfile(ctx context.Context) (*domain.Profile, error) {
	var p domain.Profile
	if err := g.client.Get(ctx, "/users/profile", &p); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// UpdateProfile implements domain.ProfileGateway.
func (g *UserGatewayImpl) UpdateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	var updated domain.Profile
	if err := g.client.Put(ctx, "/users/profile", p, &updated); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &updated, nil
}

// Compile-time interface compliance verification
var _ domain.ProfileGateway = (*UserGatewayImpl)(nil)
