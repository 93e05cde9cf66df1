package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Paths that must stay reachable without the app key: load balancer probes
// and the billing provider's webhook, which cannot send custom headers.
var apiKeyExempt = map[string]bool{
	"/health":                       true,
	"/api/v1/subscriptions/webhook": true,
}

// APIKeyRequired rejects requests that do not carry the shared app key in
// x-api-key. The comparison is constant-time.
func APIKeyRequired(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKeyExempt[c.FullPath()] || apiKeyExempt[c.Request.URL.Path] {
			c.Next()
			return
		}
		got := c.GetHeader("x-api-key")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid API key"})
			return
		}
		c.Next()
	}
}
