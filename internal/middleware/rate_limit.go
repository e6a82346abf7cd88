package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"normanbakes_back_end/internal/database"
)

const (
	OrderMaxPerWindow = 5
	OrderWindow       = 1 * time.Minute
)

// OrderRateLimit caps order submissions per IP (anti-spam). Skipped
// entirely when Redis is not configured.
func OrderRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.Redis == nil {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "order_submissions:" + c.ClientIP()

		// Incr is the atomic check; the TTL is set once on the first hit so
		// the window is fixed rather than sliding with every submission.
		attempts, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if attempts == 1 {
			database.Redis.Expire(ctx, key, OrderWindow)
		}

		if attempts > OrderMaxPerWindow {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many orders. Please try again in a minute",
				"retry_after": int(OrderWindow.Seconds()),
			})
			c.Abort()
			return
		}

		remaining := OrderMaxPerWindow - attempts
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", OrderMaxPerWindow))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		c.Next()
	}
}
