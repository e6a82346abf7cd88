package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// RequireAdminSecret gates the administrative listing behind the shared
// secret in ADMIN_API_SECRET. Fails closed: no configured secret means the
// endpoint is off, not open.
func RequireAdminSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := os.Getenv("ADMIN_API_SECRET")
		if secret == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin access is not configured"})
			c.Abort()
			return
		}

		provided := c.GetHeader("X-Admin-Secret")
		if provided == "" {
			provided = c.Query("secret")
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin secret"})
			c.Abort()
			return
		}

		c.Next()
	}
}
