package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"normanbakes_back_end/internal/cache"
	"normanbakes_back_end/internal/models"
)

// GetSeasonalDeals lists active storefront promotions.
func (a *API) GetSeasonalDeals(c *gin.Context) {
	deals, err := cache.GetActiveDeals(c.Request.Context(), a.Store)
	if err != nil {
		log.Println("❌ Error fetching seasonal deals:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching seasonal deals"})
		return
	}

	if deals == nil {
		deals = []models.SeasonalDeal{}
	}
	c.JSON(http.StatusOK, deals)
}
