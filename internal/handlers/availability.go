package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"normanbakes_back_end/internal/availability"
)

// CheckDateAvailability answers the storefront calendar's advisory check.
// The authoritative check happens again at order creation.
func (a *API) CheckDateAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Date parameter is required"})
		return
	}

	available, current, err := a.Orders.CheckDate(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Date must be in YYYY-MM-DD format"})
			return
		}
		log.Println("❌ Error checking date availability:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error checking availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"available":     available,
		"currentOrders": current,
	})
}
