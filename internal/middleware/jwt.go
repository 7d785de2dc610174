package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dohmens-hub/backend/internal/models"
	"github.com/dohmens-hub/backend/internal/token"
	"github.com/dohmens-hub/backend/pkg/response"
)

// JWT returns a middleware that validates the bearer token and attaches the
// request principal. Roles outside the recognized enum are normalized to the
// unprivileged tier rather than rejected.
func JWT(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := tokens.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		setPrincipal(c, Principal{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   models.NormalizeRole(claims.Role),
		})
		c.Next()
	}
}
