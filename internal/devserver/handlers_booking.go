package devserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/estately/domain"
)

// BookingHandlers serves the site-visit booking endpoints.
type BookingHandlers struct {
	store *MemStore
}

// NewBookingHandlers creates new booking handlers.
func NewBookingHandlers(store *MemStore) *BookingHandlers {
	return &BookingHandlers{store: store}
}

// CreateBookingRequest is the payload for booking a site visit.
type CreateBookingRequest struct {
	VisitDate time.Time `json:"visitDate" binding:"required"`
	Notes     string    `json:"notes"`
}

// Create books a site visit for the authenticated user.
func (h *BookingHandlers) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	propertyID := c.Param("id")
	if _, err := h.store.GetProperty(propertyID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	booking := h.store.CreateBooking(&domain.Booking{
		PropertyID: propertyID,
		ContactNo:  c.GetString(ctxContactNo),
		VisitDate:  req.VisitDate,
		Notes:      req.Notes,
	})
	c.JSON(http.StatusCreated, booking)
}

// UserBookings lists the authenticated user's bookings.
func (h *BookingHandlers) UserBookings(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.UserBookings(c.GetString(ctxContactNo)))
}

// UserPropertyBooking returns the user's booking for one property, if any.
func (h *BookingHandlers) UserPropertyBooking(c *gin.Context) {
	b, err := h.store.UserPropertyBooking(c.GetString(ctxContactNo), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No booking for property"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// AllBookings lists every booking. Admin only.
func (h *BookingHandlers) AllBookings(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.AllBookings())
}

// UpdateStatusRequest carries a booking status transition.
type UpdateStatusRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
}

// UpdateStatus changes a booking's status. Admin only.
func (h *BookingHandlers) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Status {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingCancelled, domain.BookingCompleted:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown booking status"})
		return
	}

	b, err := h.store.UpdateBookingStatus(c.Param("id"), req.Status)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	c.JSON(http.StatusOK, b)
}
