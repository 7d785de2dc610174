package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/dohmens-hub/backend/internal/models"
	"github.com/dohmens-hub/backend/pkg/response"
)

// RequireRole returns a middleware that allows only principals holding one
// of the given roles. It runs after JWT.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		p := CurrentPrincipal(c)
		if _, ok := allowed[p.Role]; !ok {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
