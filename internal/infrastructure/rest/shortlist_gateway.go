package rest

import (
	"context"
	"fmt"
	"net/url"

	"github.com/you/estately/domain"
)

// ShortlistGatewayImpl implements domain.ShortlistGateway.
type ShortlistGatewayImpl struct {
	client *Client
}

// NewShortlistGateway creates a new shortlist gateway.
func NewShortlistGateway(client *Client) domain.ShortlistGateway {
	return &ShortlistGatewayImpl{client: client}
}

// Add implements domain.ShortlistGateway.
func (g *ShortlistGatewayImpl) Add(ctx context.Context, propertyID string) (*domain.ShortlistEntry, error) {
	var entry domain.ShortlistEntry
	path := "/property/" + url.PathEscape(propertyID) + "/shortlist"
	if err := g.client.Post(ctx, path, nil, &entry); err != nil {
		return nil, fmt.Errorf("shortlist add: %w", err)
	}
	return &entry, nil
}

// List implements domain.ShortlistGateway.
func (g *ShortlistGatewayImpl) List(ctx context.Context) ([]domain.ShortlistEntry, error) {
	var entries []domain.ShortlistEntry
	if err := g.client.Get(ctx, "/users/shortlist", &entries); err != nil {
		return nil, fmt.Errorf("shortlist list: %w", err)
	}
	return entries, nil
}

// Remove implements domain.ShortlistGateway.
func (g *ShortlistGatewayImpl) Remove(ctx context.Context, entryID string) error {
	if err := g.client.Delete(ctx, "/users/shortlist/"+url.PathEscape(entryID)); err != nil {
		return fmt.Errorf("shortlist remove: %w", err)
	}
	return nil
}

type toggleResponse struct {
	Shortlisted bool `json:"shortlisted"`
}

// Toggle implements domain.ShortlistGateway. It reports whether the property
// is shortlisted after the call.
func (g *ShortlistGatewayImpl) Toggle(ctx context.Context, propertyID string) (bool, error) {
	var reply toggleResponse
	path := "/property/" + url.PathEscape(propertyID) + "/toggle-shortlist"
	if err := g.client.Post(ctx, path, nil, &reply); err != nil {
		return false, fmt.Errorf("shortlist toggle: %w", err)
	}
	return reply.Shortlisted, nil
}

// Compile-time interface compliance verification
var _ domain.ShortlistGateway = (*ShortlistGatewayImpl)(nil)
