package middleware

import (
	"net/http"
	"strings"

	"salonbooking/internal/pkg/jwt"
	"salonbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type tokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// RequireAuth validates the Bearer token and sets customer_id and role in the
// Gin context. Requests without a valid token are rejected.
func RequireAuth(jwtSvc tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromHeader(c, jwtSvc)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		c.Set("customer_id", claims.CustomerID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// OptionalAuth sets customer_id and role when a valid token is present and
// lets the request through either way. Guest booking endpoints use this so a
// logged-in customer gets the booking attached to their account.
func OptionalAuth(jwtSvc tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := claimsFromHeader(c, jwtSvc); ok {
			c.Set("customer_id", claims.CustomerID)
			c.Set("role", claims.Role)
		}
		c.Next()
	}
}

// RequireRole ensures the authenticated customer has the given role.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if role.(string) != requiredRole {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole("admin")
}

func claimsFromHeader(c *gin.Context, jwtSvc tokenValidator) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, false
	}

	claims, err := jwtSvc.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}
