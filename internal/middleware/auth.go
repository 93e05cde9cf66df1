package middleware

import (
	"log"
	"net/http"
	"strings"

	"basemap/internal/domain"
	"basemap/internal/identity"
	"basemap/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token against the identity provider's
// signing secret and sets user_id, email and role in the request context.
// The profile row is created on first contact.
func AuthRequired(verifier identity.Verifier, profiles *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid authorization format"})
			return
		}
		ident, err := verifier.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid or expired token"})
			return
		}
		// A failed profile lookup leaves the request authenticated with no
		// role; role-gated routes deny it.
		role := ""
		if profile, err := profiles.EnsureProfile(ident.UserID, ident.Email); err == nil {
			role = profile.Role
		} else {
			log.Printf("auth: profile lookup failed for %s: %v", ident.UserID, err)
		}
		c.Set("user_id", ident.UserID)
		c.Set("email", ident.Email)
		c.Set("role", role)
		c.Next()
	}
}

// RequireRole checks that the authenticated user's role ranks at least as
// high as required. USER < ADMIN < SUPERUSER.
func RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}
		if !domain.RoleAtLeast(role.(string), required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden"})
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user ID from context (must be used after AuthRequired).
func GetUserID(c *gin.Context) string {
	v, _ := c.Get("user_id")
	if v == nil {
		return ""
	}
	return v.(string)
}

// GetRole returns the authenticated user's role from context.
func GetRole(c *gin.Context) string {
	v, _ := c.Get("role")
	if v == nil {
		return ""
	}
	return v.(string)
}
