package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salonbook/internal/pkg/response"
)

// RequireRole ensures the authenticated staff member has one of the given
// roles. Runs after JWTAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role.(string) == allowed {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}

// OwnerOnly restricts a route to salon owners.
func OwnerOnly() gin.HandlerFunc {
	return RequireRole("owner")
}
