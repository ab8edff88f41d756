// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gearup-sports/storefront-backend/internal/domain/checkout"
	"github.com/gearup-sports/storefront-backend/internal/domain/order"
	"github.com/gearup-sports/storefront-backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// GetSummary handles GET /checkout/summary
func (h *CheckoutHandler) GetSummary(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	summary, err := h.checkoutService.GetCheckoutSummary(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, checkout.ErrAuthRequired) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign in to check out"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build checkout summary",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": summary,
	})
}

// GetPaymentMethods handles GET /checkout/payment-methods
func (h *CheckoutHandler) GetPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": h.checkoutService.PaymentMethods(),
	})
}

// ValidateAddress handles POST /checkout/validate-address
func (h *CheckoutHandler) ValidateAddress(c *gin.Context) {
	var addr order.Address
	if err := c.ShouldBindJSON(&addr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": h.checkoutService.ValidateAddress(&addr),
	})
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req checkout.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.checkoutService.PlaceOrder(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrAuthRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign in to place an order"})
		case errors.Is(err, order.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	status := http.StatusCreated
	if result.PaymentStatus == order.PaymentStatusFailed {
		// The order exists but payment was declined; payment can be retried
		status = http.StatusPaymentRequired
	}

	c.JSON(status, gin.H{
		"data": result,
	})
}

// ConfirmRazorpay handles POST /checkout/razorpay/confirm
func (h *CheckoutHandler) ConfirmRazorpay(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req struct {
		OrderID           uint   `json:"order_id" binding:"required"`
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	o, err := h.checkoutService.ConfirmRazorpayPayment(c.Request.Context(), userID, req.OrderID,
		req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrAuthRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment confirmed",
		"data":    o,
	})
}
