package events

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dohmens-hub/backend/internal/middleware"
	"github.com/dohmens-hub/backend/internal/policy"
	"github.com/dohmens-hub/backend/pkg/response"
	"github.com/dohmens-hub/backend/pkg/store"
)

// Handler serves the Calendar view: the event listing and the inline
// creation form.
type Handler struct {
	repo *Repository
}

// NewHandler creates an events handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateRequest is the body for POST /events.
type CreateRequest struct {
	Title          string     `json:"title" binding:"required,max=100"`
	Description    string     `json:"description"`
	StartTime      time.Time  `json:"start_time" binding:"required"`
	EndTime        *time.Time `json:"end_time"`
	Location       string     `json:"location"`
	OrganizationID uuid.UUID  `json:"organization_id" binding:"required"`
	IsPublic       *bool      `json:"is_public"`
	MaxAttendees   *int       `json:"max_attendees" binding:"omitempty,min=0"`
}

// CalendarRow is CalendarEvent with display labels the way the calendar
// renders them: the end time reads "TBD" when absent.
type CalendarRow struct {
	CalendarEvent
	TimeLabel string `json:"time_label"`
}

// List handles GET /events. "include_private=true" is honored only for
// principals holding the leader-or-admin capability; everyone else sees
// public events only.
func (h *Handler) List(c *gin.Context) {
	includePrivate := c.Query("include_private") == "true"
	if includePrivate {
		p := middleware.CurrentPrincipal(c)
		if !policy.CanEditOrganization(p.Role) {
			includePrivate = false
		}
	}
	list := h.repo.List(c.Request.Context(), includePrivate)
	rows := make([]CalendarRow, 0, len(list))
	for _, ev := range list {
		rows = append(rows, CalendarRow{CalendarEvent: ev, TimeLabel: timeLabel(ev)})
	}
	response.OK(c, rows)
}

func timeLabel(ev CalendarEvent) string {
	label := ev.StartTime.Format("01/02/2006 03:04 PM")
	if ev.EndTime == nil {
		return label
	}
	return label + " - " + ev.EndTime.Format("03:04 PM")
}

// Create handles POST /events.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "title, start_time, and organization_id are required")
		return
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	ev, err := h.repo.Create(c.Request.Context(), Input{
		Title:          req.Title,
		Description:    req.Description,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Location:       req.Location,
		OrganizationID: req.OrganizationID,
		IsPublic:       isPublic,
		MaxAttendees:   req.MaxAttendees,
	})
	if err != nil {
		var we *store.WriteError
		if errors.As(err, &we) && we.ForeignKeyViolation() {
			response.BadRequest(c, "host organization does not exist")
			return
		}
		response.Internal(c, "failed to create event")
		return
	}
	response.Created(c, ev)
}
