package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"normanbakes_back_end/internal/handlers"
	"normanbakes_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, api *handlers.API) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	a := r.Group("/api")
	a.GET("/seasonal-deals", api.GetSeasonalDeals)
	a.GET("/check-date-availability", api.CheckDateAvailability)
	a.POST("/orders", middleware.OrderRateLimit(), api.CreateOrder)
	a.GET("/orders", middleware.RequireAdminSecret(), api.ListOrders)
	a.POST("/create-payment-intent", api.CreatePaymentIntent)
	a.POST("/confirm-payment", api.ConfirmPayment)
}
