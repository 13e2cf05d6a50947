// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/baskitup/storefront/internal/config"
	"github.com/baskitup/storefront/internal/domain/basket"
	"github.com/baskitup/storefront/internal/domain/cart"
	"github.com/baskitup/storefront/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService   *cart.Service
	basketService *basket.Service
	config        *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, db *gorm.DB, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService:   cartService,
		basketService: basket.NewService(db),
		config:        cfg,
	}
}

// AddToCartRequest represents the add-to-cart payload
type AddToCartRequest struct {
	BasketID string `json:"basket_id" binding:"required"`
	Quantity int    `json:"quantity"`
}

// UpdateQuantityRequest represents the quantity update payload
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart returns the current cart with its totals
func (h *CartHandler) GetCart(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	method := cart.ParseShippingMethod(c.Query("shipping"))

	items := h.cartService.Items(c.Request.Context(), identity)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items":      items,
			"item_count": h.cartService.ItemCount(c.Request.Context(), identity),
			"totals":     cart.ComputeTotals(items, method),
		},
	})
}

// GetTotals returns only the computed totals for the current cart
func (h *CartHandler) GetTotals(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	method := cart.ParseShippingMethod(c.Query("shipping"))

	c.JSON(http.StatusOK, gin.H{
		"data": h.cartService.Totals(c.Request.Context(), identity, method),
	})
}

// AddItem adds a basket to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	b, err := h.basketService.GetByID(req.BasketID)
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

	identity := middleware.IdentityFromContext(c)
	items := h.cartService.AddItem(c.Request.Context(), identity, b, req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data": gin.H{
			"items": items,
		},
	})
}

// UpdateItem changes the quantity of a cart line
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	identity := middleware.IdentityFromContext(c)
	items := h.cartService.UpdateQuantity(c.Request.Context(), identity, c.Param("id"), req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"data": gin.H{
			"items": items,
		},
	})
}

// RemoveItem deletes a cart line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	items := h.cartService.RemoveItem(c.Request.Context(), identity, c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data": gin.H{
			"items": items,
		},
	})
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	h.cartService.Clear(c.Request.Context(), identity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}
