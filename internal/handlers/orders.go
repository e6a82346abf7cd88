package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"normanbakes_back_end/internal/models"
	"normanbakes_back_end/internal/pricing"
	"normanbakes_back_end/internal/service"
)

// CreateOrder validates and persists a new order. Amounts in the response
// are always the server's own figures.
func (a *API) CreateOrder(c *gin.Context) {
	var req service.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	order, err := a.Orders.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": vErr.Fields})
		case errors.Is(err, service.ErrDateUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "This date is fully booked. Please select another date.",
				"code":    "DateUnavailable",
			})
		case errors.Is(err, pricing.ErrInvalidSelection):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product selection"})
		default:
			log.Println("❌ Error creating order:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating order"})
		}
		return
	}

	log.Printf("🧁 Order #%d created (%s, %s)", order.ID, order.ProductType, order.CollectionDate)
	c.JSON(http.StatusOK, order)
}

// ListOrders is the admin listing; the shared-secret gate sits in front of
// it in the route table.
func (a *API) ListOrders(c *gin.Context) {
	orders, err := a.Store.ListOrders(c.Request.Context())
	if err != nil {
		log.Println("❌ Error listing orders:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error listing orders"})
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}
