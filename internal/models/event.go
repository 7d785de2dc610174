package models

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a dated activity hosted by an organization. EndTime is
// optional ("TBD" when absent); MaxAttendees is absent for unlimited.
type Event struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	Location       string     `json:"location,omitempty"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	IsPublic       bool       `json:"is_public"`
	MaxAttendees   *int       `json:"max_attendees,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
