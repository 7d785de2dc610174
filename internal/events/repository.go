// Package events persists organization events and the Calendar listing
// built on them.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dohmens-hub/backend/internal/models"
	"github.com/dohmens-hub/backend/pkg/store"
)

const table = "events"

// Input is the field set for creating an event. MaxAttendees of zero means
// unlimited and is stored as absent.
type Input struct {
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	Location       string     `json:"location,omitempty"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	IsPublic       bool       `json:"is_public"`
	MaxAttendees   *int       `json:"max_attendees,omitempty"`
}

// CalendarEvent is one Calendar row: the event with the host organization's
// name and category flattened in.
type CalendarEvent struct {
	models.Event
	OrganizationName     string `json:"organization_name"`
	OrganizationCategory string `json:"organization_category"`
}

type eventRow struct {
	models.Event
	Org *struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	} `json:"organizations,omitempty"`
}

// Repository handles event persistence.
type Repository struct {
	store  *store.Client
	logger *zap.Logger
}

// NewRepository creates an events repository.
func NewRepository(st *store.Client, logger *zap.Logger) *Repository {
	return &Repository{store: st, logger: logger}
}

// Create inserts an event. A missing host organization surfaces as the
// store's foreign-key write error.
func (r *Repository) Create(ctx context.Context, in Input) (*models.Event, error) {
	if in.MaxAttendees != nil && *in.MaxAttendees == 0 {
		in.MaxAttendees = nil
	}
	var ev models.Event
	if err := r.store.From(table).Insert(ctx, in, &ev); err != nil {
		store.LogSwallowed(r.logger, "events.create", err)
		return nil, err
	}
	return &ev, nil
}

// List returns events ordered by start time ascending, each enriched with
// the host organization's name and category. When includePrivate is false,
// non-public rows are excluded at the store, not redacted.
func (r *Repository) List(ctx context.Context, includePrivate bool) []CalendarEvent {
	q := r.store.From(table).Select("*,organizations(name,category)")
	if !includePrivate {
		q = q.Eq("is_public", "true")
	}
	var rows []eventRow
	if err := q.Order("start_time", true).Get(ctx, &rows); err != nil {
		store.LogSwallowed(r.logger, "events.list", err)
		return nil
	}
	list := make([]CalendarEvent, 0, len(rows))
	for _, row := range rows {
		ce := CalendarEvent{Event: row.Event}
		if row.Org != nil {
			ce.OrganizationName = row.Org.Name
			ce.OrganizationCategory = row.Org.Category
		}
		list = append(list, ce)
	}
	return list
}
