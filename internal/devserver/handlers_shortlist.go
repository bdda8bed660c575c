package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ShortlistHandlers serves the shortlist endpoints.
type ShortlistHandlers struct {
	store *MemStore
}

// NewShortlistHandlers creates new shortlist handlers.
func NewShortlistHandlers(store *MemStore) *ShortlistHandlers {
	return &ShortlistHandlers{store: store}
}

// Add shortlists a property for the authenticated user. Adding an already
// shortlisted property returns the existing entry.
func (h *ShortlistHandlers) Add(c *gin.Context) {
	propertyID := c.Param("id")
	if _, err := h.store.GetProperty(propertyID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	entry := h.store.AddShortlist(c.GetString(ctxContactNo), propertyID)
	c.JSON(http.StatusCreated, gin.H{
		"id":         entry.ID,
		"propertyId": entry.PropertyID,
		"addedAt":    entry.AddedAt,
	})
}

// List returns the authenticated user's shortlist.
func (h *ShortlistHandlers) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.UserShortlist(c.GetString(ctxContactNo)))
}

// Remove deletes a shortlist entry by id.
func (h *ShortlistHandlers) Remove(c *gin.Context) {
	if !h.store.RemoveShortlist(c.GetString(ctxContactNo), c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shortlist entry not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from shortlist"})
}

// Toggle flips a property's shortlist membership and reports the result.
func (h *ShortlistHandlers) Toggle(c *gin.Context) {
	propertyID := c.Param("id")
	if _, err := h.store.GetProperty(propertyID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	shortlisted := h.store.ToggleShortlist(c.GetString(ctxContactNo), propertyID)
	c.JSON(http.StatusOK, gin.H{"shortlisted": shortlisted})
}
