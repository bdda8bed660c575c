package devserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/estately/domain"
)

// UserHandlers serves the authenticated profile endpoints.
type UserHandlers struct {
	store *MemStore
}

// NewUserHandlers creates new user handlers.
func NewUserHandlers(store *MemStore) *UserHandlers {
	return &UserHandlers{store: store}
}

// GetProfile returns the authenticated user's profile.
func (h *UserHandlers) GetProfile(c *gin.Context) {
	user, err := h.store.FindUser(c.GetString(ctxContactNo))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, domain.Profile{Name: user.Name, Email: user.Email, ContactNo: user.ContactNo})
}

// UpdateProfileRequest carries the editable profile fields. The contact number
// is identity and cannot be changed here.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UpdateProfile applies partial updates to the authenticated user's profile.
func (h *UserHandlers) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.UpdateUser(c.GetString(ctxContactNo), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, domain.Profile{Name: user.Name, Email: user.Email, ContactNo: user.ContactNo})
}
