package rest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/you/estately/domain"
)

// PropertyGatewayImpl implements domain.PropertyGateway. Listing, featured,
// detail and search are public endpoints; the admin CRUD routes require an
// ADMIN session.
type PropertyGatewayImpl struct {
	client *Client
}

// NewPropertyGateway creates a new property gateway.
func NewPropertyGateway(client *Client) domain.PropertyGateway {
	return &PropertyGatewayImpl{client: client}
}

// List implements domain.PropertyGateway.
func (g *PropertyGatewayImpl) List(ctx context.Context) ([]domain.Property, error) {
	var props []domain.Property
	if err := g.client.Get(ctx, "/property", &props); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return props, nil
}

// Featured implements domain.PropertyGateway.
func (g *PropertyGatewayImpl) Featured(ctx context.Context) ([]domain.Property, error) {
	var props []domain.Property
	if err := g.client.Get(ctx, "/property/featured", &props); err != nil {
		return nil, fmt.Errorf("featured properties: %w", err)
	}
	return props, nil
}

// Get implements domain.PropertyGateway.
func (g *PropertyGatewayImpl) Get(ctx context.Context, id string) (*domain.Property, error) {
	var p domain.Property
	if err := g.client.Get(ctx, "/property/"+url.PathEscape(id), &p); err != nil {
		return nil, fmt.Errorf("get property %s: %w", id, err)
	}
	return &p, nil
}

// Search implements domain.PropertyGateway.
func (g *PropertyGatewayImpl) Search(ctx context.Context, query domain.PropertySearch) ([]domain.Property, error) {
	params := url.Values{}
	if query.Location != "" {
		params.Set("location", query.Location)
	}
	if query.MinPrice > 0 {
		params.Set("minPrice", strconv.FormatInt(query.MinPrice, 10))
	}
	if query.MaxPrice > 0 {
		params.Set("maxPrice", strconv.FormatInt(query.MaxPrice, 10))
	}
	if query.Bedrooms > 0 {
		params.Set("bedrooms", strconv.Itoa(query.Bedrooms))
	}

	path := "/property/search"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var props []domain.Property
	if err := g.client.Get(ctx, path, &props); err != nil {
		return nil, fmt.Errorf("search properties: %w", err)
	}
	return props, nil
}

// AdminList implements domain.PropertyGateway (admin). The management view
// lists through the authenticated route rather than the public catalogue.
func (g *PropertyGatewayImpl) AdminList(ctx context.Context) ([]domain.Property, error) {
	var props []domain.Property
	if err := g.client.Get(ctx, "/admin/properties", &props); err != nil {
		return nil, fmt.Errorf("admin list properties: %w", err)
	}
	return props, nil
}

// Create implements domain.PropertyGateway (admin).
func (g *PropertyGatewayImpl) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	var created domain.Property
	if err := g.client.Post(ctx, "/admin/properties", p, &created); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	return &created, nil
}

// Update implements domain.PropertyGateway (admin).
func (g *PropertyGatewayImpl) Update(ctx context.Context, id string, p *domain.Property) (*domain.Property, error) {
	var updated domain.Property
	if err := g.client.Put(ctx, "/admin/properties/"+url.PathEscape(id), p, &updated); err != nil {
		return nil, fmt.Errorf("update property %s: %w", id, err)
	}
	return &updated, nil
}

// Delete implements domain.PropertyGateway (admin).
func (g *PropertyGatewayImpl) Delete(ctx context.Context, id string) error {
	if err := g.client.Delete(ctx, "/admin/properties/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete property %s: %w", id, err)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.PropertyGateway = (*PropertyGatewayImpl)(nil)
