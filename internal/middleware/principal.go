package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dohmens-hub/backend/internal/models"
)

// principalKey is the gin context key the JWT middleware sets.
const principalKey = "principal"

// Principal is the authenticated identity for one request. It replaces
// ambient session state: handlers receive it explicitly from the context
// set up by the JWT middleware.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   models.Role
}

// CurrentPrincipal returns the request's authenticated principal. It must
// only be called on routes behind the JWT middleware.
func CurrentPrincipal(c *gin.Context) Principal {
	return c.MustGet(principalKey).(Principal)
}

func setPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}
