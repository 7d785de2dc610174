// Package admin serves the Admin view: user role management and full
// organization CRUD, including the two-step delete confirmation.
package admin

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dohmens-hub/backend/internal/middleware"
	"github.com/dohmens-hub/backend/internal/models"
	"github.com/dohmens-hub/backend/internal/organizations"
	"github.com/dohmens-hub/backend/internal/policy"
	"github.com/dohmens-hub/backend/internal/users"
	"github.com/dohmens-hub/backend/pkg/response"
	"github.com/dohmens-hub/backend/pkg/store"
)

// Handler handles admin HTTP endpoints. Routes are mounted behind
// RequireRole(admin), mirroring the panel's access rule.
type Handler struct {
	users   *users.Repository
	orgs    *organizations.Repository
	pending *PendingDeletes
	logger  *zap.Logger
}

// NewHandler creates an admin handler.
func NewHandler(userRepo *users.Repository, orgRepo *organizations.Repository, pending *PendingDeletes, logger *zap.Logger) *Handler {
	return &Handler{users: userRepo, orgs: orgRepo, pending: pending, logger: logger}
}

// ListUsers handles GET /admin/users.
func (h *Handler) ListUsers(c *gin.Context) {
	response.OK(c, h.users.List(c.Request.Context()))
}

// RoleRequest is the body for PUT /admin/users/:id/role.
type RoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateUserRole handles PUT /admin/users/:id/role.
func (h *Handler) UpdateUserRole(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "role is required")
		return
	}
	newRole, ok := models.ParseRole(req.Role)
	if !ok {
		response.BadRequest(c, "unrecognized role")
		return
	}

	p := middleware.CurrentPrincipal(c)
	if !policy.CanChangeRole(p.UserID, targetID, newRole, p.Role) {
		response.Forbidden(c, "admins cannot demote themselves from the admin role")
		return
	}
	if !h.users.UpdateRole(c.Request.Context(), targetID, newRole) {
		response.Internal(c, "failed to update user role")
		return
	}
	h.logger.Info("user role changed",
		zap.String("target", targetID.String()),
		zap.String("role", string(newRole)),
		zap.String("acting", p.UserID.String()),
	)
	response.OK(c, gin.H{"id": targetID, "role": newRole})
}

// OrgRequest is the full replacement field set for organization create and
// update, matching the admin form's required fields.
type OrgRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	AdvisorName string  `json:"advisor_name" binding:"required"`
	MeetingInfo string  `json:"meeting_info"`
	LogoURL     *string `json:"logo_url"`
	IsVerified  bool    `json:"is_verified"`
}

func (r OrgRequest) toInput() organizations.Input {
	return organizations.Input{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		AdvisorName: r.AdvisorName,
		MeetingInfo: r.MeetingInfo,
		LogoURL:     r.LogoURL,
		IsVerified:  r.IsVerified,
	}
}

// CreateOrganization handles POST /admin/organizations.
func (h *Handler) CreateOrganization(c *gin.Context) {
	var req OrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name, description, category, and advisor_name are required")
		return
	}
	if !models.ValidCategory(req.Category) {
		response.BadRequest(c, "unrecognized category")
		return
	}
	org, err := h.orgs.Create(c.Request.Context(), req.toInput())
	if err != nil {
		var we *store.WriteError
		if errors.As(err, &we) && we.UniqueViolation() {
			response.Conflict(c, "an organization with this name already exists")
			return
		}
		response.Internal(c, "failed to create organization")
		return
	}
	response.Created(c, org)
}

// UpdateOrganization handles PUT /admin/organizations/:id with a full
// replacement field set.
func (h *Handler) UpdateOrganization(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	var req OrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name, description, category, and advisor_name are required")
		return
	}
	if !models.ValidCategory(req.Category) {
		response.BadRequest(c, "unrecognized category")
		return
	}
	org, err := h.orgs.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(c, "organization not found")
			return
		}
		response.Internal(c, "failed to update organization")
		return
	}
	response.OK(c, org)
}

// RequestDelete handles POST /admin/organizations/:id/delete-request:
// the first phase of the two-step delete. Nothing is removed yet.
func (h *Handler) RequestDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	org := h.orgs.GetByID(c.Request.Context(), id)
	if org == nil {
		response.NotFound(c, "organization not found")
		return
	}
	p := middleware.CurrentPrincipal(c)
	h.pending.Request(p.UserID, id)
	response.Accepted(c, gin.H{
		"pending_delete": org.ID,
		"name":           org.Name,
		"message":        "confirm or cancel to complete the deletion",
	})
}

// ConfirmDelete handles POST /admin/organizations/:id/delete-confirm: the
// second phase. It only succeeds for the organization named in the admin's
// unexpired pending request.
func (h *Handler) ConfirmDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	p := middleware.CurrentPrincipal(c)
	if !h.pending.Confirm(p.UserID, id) {
		response.Conflict(c, "no matching delete request; request the deletion again")
		return
	}
	if !h.orgs.Delete(c.Request.Context(), id) {
		response.Internal(c, "failed to delete organization")
		return
	}
	h.logger.Info("organization deleted",
		zap.String("organization", id.String()),
		zap.String("acting", p.UserID.String()),
	)
	response.OK(c, gin.H{"deleted": id})
}

// CancelDelete handles POST /admin/organizations/:id/delete-cancel.
func (h *Handler) CancelDelete(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	if !h.pending.Cancel(p.UserID) {
		response.NotFound(c, "no pending delete request")
		return
	}
	response.OK(c, gin.H{"cancelled": true})
}
