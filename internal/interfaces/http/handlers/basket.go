// internal/interfaces/http/handlers/basket.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/baskitup/storefront/internal/config"
	"github.com/baskitup/storefront/internal/domain/basket"
)

// BasketHandler handles catalog endpoints
type BasketHandler struct {
	basketService *basket.Service
	config        *config.Config
}

// NewBasketHandler creates a new basket handler
func NewBasketHandler(db *gorm.DB, cfg *config.Config) *BasketHandler {
	return &BasketHandler{
		basketService: basket.NewService(db),
		config:        cfg,
	}
}

// List returns the catalog, optionally filtered by category and search text
func (h *BasketHandler) List(c *gin.Context) {
	category := c.Query("category")
	search := c.Query("search")

	baskets, err := h.basketService.List(category, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load baskets",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  baskets,
		"count": len(baskets),
	})
}

// GetFeatured returns the recommended selection for the storefront home page
func (h *BasketHandler) GetFeatured(c *gin.Context) {
	featured, err := h.basketService.Featured(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load featured baskets",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  featured,
		"count": len(featured),
	})
}

// GetBySlug returns a single basket with its full description
func (h *BasketHandler) GetBySlug(c *gin.Context) {
	detail, err := h.basketService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, basket.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Basket not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load basket",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": detail,
	})
}

// Create adds a new basket to the catalog
func (h *BasketHandler) Create(c *gin.Context) {
	var req basket.Payload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	detail, err := h.basketService.Create(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create basket",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Basket created successfully",
		"data":    detail,
	})
}

// Update modifies an existing basket
func (h *BasketHandler) Update(c *gin.Context) {
	var req basket.Payload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	detail, err := h.basketService.Update(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, basket.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Basket not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update basket",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Basket updated successfully",
		"data":    detail,
	})
}

// Delete removes a basket from the catalog
func (h *BasketHandler) Delete(c *gin.Context) {
	if err := h.basketService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, basket.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Basket not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete basket",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Basket deleted successfully",
	})
}
