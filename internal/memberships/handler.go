package memberships

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dohmens-hub/backend/internal/middleware"
	"github.com/dohmens-hub/backend/internal/policy"
	"github.com/dohmens-hub/backend/pkg/response"
)

// Handler serves membership endpoints: join/leave controls on the Detail
// view and the Profile view's membership list.
type Handler struct {
	repo *Repository
}

// NewHandler creates a memberships handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// MutationRequest optionally names the membership's user. When present it
// must match the principal; nobody mutates another user's membership.
type MutationRequest struct {
	UserID *uuid.UUID `json:"user_id"`
}

// resolveUser applies the self-only rule and returns the acted-on user id.
func resolveUser(c *gin.Context) (uuid.UUID, bool) {
	p := middleware.CurrentPrincipal(c)
	var body MutationRequest
	// Body is optional; an empty or absent body acts on the principal.
	_ = c.ShouldBindJSON(&body)
	if body.UserID == nil {
		return p.UserID, true
	}
	if !policy.CanMutateMembership(p.UserID, *body.UserID) {
		response.Forbidden(c, "memberships can only be changed for your own account")
		return uuid.Nil, false
	}
	return *body.UserID, true
}

// Status handles GET /organizations/:id/membership. The result is computed
// fresh on every call, never cached across a join/leave.
func (h *Handler) Status(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	p := middleware.CurrentPrincipal(c)
	m := h.repo.GetStatus(c.Request.Context(), p.UserID, orgID)
	if m == nil {
		response.OK(c, gin.H{"member": false})
		return
	}
	response.OK(c, gin.H{"member": true, "membership": m})
}

// Join handles POST /organizations/:id/join. A repeated join is a no-op.
func (h *Handler) Join(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	userID, ok := resolveUser(c)
	if !ok {
		return
	}
	if !h.repo.Join(c.Request.Context(), userID, orgID, "") {
		response.Conflict(c, "you are already a member of this organization")
		return
	}
	response.Created(c, gin.H{"joined": true})
}

// Leave handles POST /organizations/:id/leave.
func (h *Handler) Leave(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	userID, ok := resolveUser(c)
	if !ok {
		return
	}
	if !h.repo.Leave(c.Request.Context(), userID, orgID) {
		response.NotFound(c, "you are not a member of this organization")
		return
	}
	response.OK(c, gin.H{"left": true})
}

// Roster handles GET /organizations/:id/members for the Detail view.
func (h *Handler) Roster(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	response.OK(c, h.repo.ListForOrg(c.Request.Context(), orgID))
}

// MyMemberships handles GET /me/memberships for the Profile view.
func (h *Handler) MyMemberships(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	response.OK(c, h.repo.ListForUser(c.Request.Context(), p.UserID))
}
