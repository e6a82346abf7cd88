package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"normanbakes_back_end/internal/service"
	"normanbakes_back_end/internal/store"
)

// CreatePaymentIntent opens a Stripe intent for an order's deposit. A
// client-sent amount is accepted for compatibility and ignored; the charge
// is always the stored deposit.
func (a *API) CreatePaymentIntent(c *gin.Context) {
	var req struct {
		OrderID int64   `json:"orderId"`
		Amount  float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order ID is required"})
		return
	}

	clientSecret, err := a.Payments.CreateIntent(c.Request.Context(), req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		case errors.Is(err, service.ErrPaymentUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Payments are currently unavailable. Please contact us directly."})
		default:
			log.Println("❌ Error creating payment intent:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating payment intent"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

// ConfirmPayment verifies the intent with Stripe, then marks the order paid.
func (a *API) ConfirmPayment(c *gin.Context) {
	var req struct {
		PaymentIntentID string `json:"paymentIntentId"`
		OrderID         int64  `json:"orderId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PaymentIntentID == "" || req.OrderID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment intent ID and order ID are required"})
		return
	}

	order, err := a.Payments.ConfirmPayment(c.Request.Context(), req.OrderID, req.PaymentIntentID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		case errors.Is(err, service.ErrPaymentUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Payments are currently unavailable. Please contact us directly."})
		case errors.Is(err, service.ErrPaymentNotSettled):
			c.JSON(http.StatusPaymentRequired, gin.H{"message": "Payment has not been completed"})
		default:
			log.Println("❌ Error confirming payment:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error confirming payment"})
		}
		return
	}

	log.Printf("💳 Deposit confirmed for order #%d (%s)", order.ID, order.StripePaymentIntentID)
	c.JSON(http.StatusOK, order)
}
