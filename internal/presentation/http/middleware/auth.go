package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maliksarmad/retailpos-api/internal/presentation/http/dto/response"
	"github.com/maliksarmad/retailpos-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("cashier_id", claims.CashierID)
		c.Set("cashier_name", claims.CashierName)
		c.Set("terminal_id", claims.TerminalID)
		c.Set("cashier_roles", claims.Roles)

		c.Next()
	}
}

// RequireRole ensures the authenticated cashier carries one of the
// given roles. Reconciliation and held-order deletion are restricted
// to supervisors.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		heldVal, exists := c.Get("cashier_roles")
		if !exists {
			response.Unauthorized(c, "Cashier not authenticated")
			c.Abort()
			return
		}
		held, _ := heldVal.([]string)

		for _, want := range roles {
			for _, have := range held {
				if have == want {
					c.Next()
					return
				}
			}
		}

		response.ErrorWithCode(c, 403, "Insufficient role for this operation")
		c.Abort()
	}
}
