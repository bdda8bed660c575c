package devserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/estately/domain"
)

// PropertyHandlers serves the public catalogue and the admin CRUD endpoints.
type PropertyHandlers struct {
	store *MemStore
}

// NewPropertyHandlers creates new property handlers.
func NewPropertyHandlers(store *MemStore) *PropertyHandlers {
	return &PropertyHandlers{store: store}
}

// List returns the whole catalogue.
func (h *PropertyHandlers) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListProperties())
}

// Featured returns the featured subset.
func (h *PropertyHandlers) Featured(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.FeaturedProperties())
}

// Get returns one property by id.
func (h *PropertyHandlers) Get(c *gin.Context) {
	p, err := h.store.GetProperty(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// Search filters the catalogue by query parameters.
func (h *PropertyHandlers) Search(c *gin.Context) {
	query := domain.PropertySearch{Location: c.Query("location")}
	if v := c.Query("minPrice"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minPrice must be an integer"})
			return
		}
		query.MinPrice = n
	}
	if v := c.Query("maxPrice"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "maxPrice must be an integer"})
			return
		}
		query.MaxPrice = n
	}
	if v := c.Query("bedrooms"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bedrooms must be an integer"})
			return
		}
		query.Bedrooms = n
	}
	c.JSON(http.StatusOK, h.store.SearchProperties(query))
}

// CreatePropertyRequest is the admin create/update payload.
type CreatePropertyRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Location    string   `json:"location" binding:"required"`
	Price       int64    `json:"price" binding:"required"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	AreaSqft    int      `json:"areaSqft"`
	Featured    bool     `json:"featured"`
	Images      []string `json:"images"`
}

func (r *CreatePropertyRequest) toProperty() *domain.Property {
	return &domain.Property{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Price:       r.Price,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		AreaSqft:    r.AreaSqft,
		Featured:    r.Featured,
		Images:      r.Images,
	}
}

// Create adds a property to the catalogue. Admin only.
func (h *PropertyHandlers) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, h.store.CreateProperty(req.toProperty()))
}

// Update replaces a property's fields. Admin only.
func (h *PropertyHandlers) Update(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.store.UpdateProperty(c.Param("id"), req.toProperty())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete removes a property. Admin only.
func (h *PropertyHandlers) Delete(c *gin.Context) {
	if err := h.store.DeleteProperty(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}
