package rest

import (
	"context"
	"fmt"
	"net/url"

	"github.com/you/estately/domain"
)

// BookingGatewayImpl implements domain.BookingGateway.
type BookingGatewayImpl struct {
	client *Client
}

// NewBookingGateway creates a new booking gateway.
func NewBookingGateway(client *Client) domain.BookingGateway {
	return &BookingGatewayImpl{client: client}
}

// UserBookings implements domain.BookingGateway.
func (g *BookingGatewayImpl) UserBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := g.client.Get(ctx, "/users/bookings", &bookings); err != nil {
		return nil, fmt.Errorf("user bookings: %w", err)
	}
	return bookings, nil
}

// Create implements domain.BookingGateway.
func (g *BookingGatewayImpl) Create(ctx context.Context, propertyID string, b *domain.Booking) (*domain.Booking, error) {
	var created domain.Booking
	path := "/property/" + url.PathEscape(propertyID) + "/book"
	if err := g.client.Post(ctx, path, b, &created); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return &created, nil
}

// UserPropertyBooking implements domain.BookingGateway.
func (g *BookingGatewayImpl) UserPropertyBooking(ctx context.Context, propertyID string) (*domain.Booking, error) {
	var b domain.Booking
	path := "/property/" + url.PathEscape(propertyID) + "/user-booking"
	if err := g.client.Get(ctx, path, &b); err != nil {
		return nil, fmt.Errorf("user property booking: %w", err)
	}
	return &b, nil
}

// AllBookings implements domain.BookingGateway (admin).
func (g *BookingGatewayImpl) AllBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := g.client.Get(ctx, "/admin/bookings", &bookings); err != nil {
		return nil, fmt.Errorf("all bookings: %w", err)
	}
	return bookings, nil
}

type bookingStatusRequest struct {
	Status domain.BookingStatus `json:"status"`
}

// UpdateStatus implements domain.BookingGateway (admin).
func (g *BookingGatewayImpl) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	var updated domain.Booking
	path := "/admin/bookings/" + url.PathEscape(bookingID)
	if err := g.client.Put(ctx, path, bookingStatusRequest{Status: status}, &updated); err != nil {
		return nil, fmt.Errorf("update booking %s: %w", bookingID, err)
	}
	return &updated, nil
}

// Compile-time interface compliance verification
var _ domain.BookingGateway = (*BookingGatewayImpl)(nil)
