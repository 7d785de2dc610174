package users

import (
	"github.com/gin-gonic/gin"

	"github.com/dohmens-hub/backend/internal/middleware"
	"github.com/dohmens-hub/backend/pkg/response"
)

// Handler serves the Profile view's read-only self endpoint.
type Handler struct {
	repo *Repository
}

// NewHandler creates a users handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Me handles GET /me.
func (h *Handler) Me(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	user := h.repo.GetByID(c.Request.Context(), p.UserID)
	if user == nil {
		response.NotFound(c, "profile not found")
		return
	}
	response.OK(c, user.ToPublic())
}
