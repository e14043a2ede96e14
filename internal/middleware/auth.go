package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"salonbook/internal/pkg/jwt"
	"salonbook/internal/pkg/response"
)

// JWTAuth validates the bearer token and stores the identity in the context
// under "staff_id", "salon_id" and "role".
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			c.Abort()
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("staff_id", claims.StaffID)
		c.Set("salon_id", claims.SalonID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// OptionalJWT populates the identity when a valid bearer token is present
// but never rejects the request. Routes that serve both walk-in clients and
// logged-in staff use this; the handler decides based on "role".
func OptionalJWT(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if strings.HasPrefix(h, "Bearer ") {
			tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			if claims, err := jwtService.ValidateToken(tokenStr); err == nil {
				c.Set("staff_id", claims.StaffID)
				c.Set("salon_id", claims.SalonID)
				c.Set("role", claims.Role)
			}
		}
		c.Next()
	}
}
