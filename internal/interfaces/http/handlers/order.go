// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baskitup/storefront/internal/config"
	"github.com/baskitup/storefront/internal/domain/cart"
	"github.com/baskitup/storefront/internal/domain/order"
	"github.com/baskitup/storefront/internal/domain/user"
	"github.com/baskitup/storefront/internal/interfaces/http/middleware"
	"github.com/baskitup/storefront/internal/pkg/email"
)

// OrderHandler handles checkout and order management endpoints
type OrderHandler struct {
	tracker  *order.Tracker
	recorder *email.Recorder
	config   *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(tracker *order.Tracker, recorder *email.Recorder, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		tracker:  tracker,
		recorder: recorder,
		config:   cfg,
	}
}

// PlaceOrderRequest represents the checkout payload
type PlaceOrderRequest struct {
	ShippingMethod string          `json:"shipping_method"`
	Note           string          `json:"note"`
	Customer       *order.Customer `json:"customer"`
}

// UpdateStatusRequest represents the status change payload
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RecordEmailRequest represents the email log payload
type RecordEmailRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SeedRequest represents the demo seed payload
type SeedRequest struct {
	IncludeCurrentUser bool `json:"include_current_user"`
	ReplaceExisting    bool `json:"replace_existing"`
}

// PlaceOrder freezes the cart into a new order
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	identity := middleware.IdentityFromContext(c)
	record, err := h.tracker.PlaceOrder(c.Request.Context(), identity, order.PlaceOrderParams{
		ShippingMethod: cart.ParseShippingMethod(req.ShippingMethod),
		Note:           req.Note,
		Customer:       req.Customer,
	})
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to place order",
		})
		return
	}

	// Record the confirmation onto the order's email history.
	if record.Customer != nil && record.Customer.Email != "" {
		msg := h.recorder.OrderConfirmation(record)
		h.recorder.Record(record.Customer.Email, msg)
		if logged, err := h.tracker.RecordEmail(c.Request.Context(), record.ID, msg.Subject, msg.Body); err == nil {
			record.EmailHistory = append([]order.EmailLog{*logged}, record.EmailHistory...)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    record,
	})
}

// MyOrders returns the authenticated identity's orders
func (h *OrderHandler) MyOrders(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	orders := h.tracker.Orders(c.Request.Context(), identity)

	c.JSON(http.StatusOK, gin.H{
		"data":  orders,
		"count": len(orders),
	})
}

// AllOrders returns every order across all identities, newest first
func (h *OrderHandler) AllOrders(c *gin.Context) {
	orders := h.tracker.AllOrders(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"data":  orders,
		"count": len(orders),
	})
}

// ListOrders returns orders grouped by identity key. Admins see every
// bucket; everyone else sees only their own.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	if raw, ok := c.Get("user_role"); ok && user.Role(raw.(string)) == user.RoleAdmin {
		c.JSON(http.StatusOK, gin.H{
			"data": h.tracker.Buckets(c.Request.Context()),
		})
		return
	}

	identity := middleware.IdentityFromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"data": map[string][]order.Record{
			identity.Key(): h.tracker.Orders(c.Request.Context(), identity),
		},
	})
}

// UpdateStatus changes an order's status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	status, ok := order.ParseStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order status",
		})
		return
	}

	record, err := h.tracker.UpdateOrderStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, order.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update order status",
			})
		}
		return
	}

	// Notify the customer about the change.
	if record.Customer != nil && record.Customer.Email != "" {
		msg := h.recorder.StatusUpdate(record, status)
		h.recorder.Record(record.Customer.Email, msg)
		_, _ = h.tracker.RecordEmail(c.Request.Context(), record.ID, msg.Subject, msg.Body)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"data":    record,
	})
}

// RecordEmail appends a custom notification to an order's email history
func (h *OrderHandler) RecordEmail(c *gin.Context) {
	var req RecordEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	logged, err := h.tracker.RecordEmail(c.Request.Context(), c.Param("id"), req.Subject, req.Message)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to record email",
		})
		return
	}

	h.recorder.Record(logged.To, email.Message{Subject: logged.Subject, Body: logged.Message})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Email recorded",
		"data":    logged,
	})
}

// SeedDemo installs demonstration orders
func (h *OrderHandler) SeedDemo(c *gin.Context) {
	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	identity := middleware.IdentityFromContext(c)
	err := h.tracker.SeedDemoOrders(c.Request.Context(), identity, order.DemoOrders(), order.SeedOptions{
		IncludeCurrentUser: req.IncludeCurrentUser,
		ReplaceExisting:    req.ReplaceExisting,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to seed demo orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Demo orders seeded",
	})
}
