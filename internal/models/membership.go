package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership roles within an organization. The store accepts free text
// beyond these; "member" is the default on join.
const (
	MembershipRoleMember = "member"
	MembershipRoleLeader = "leader"
)

// Membership links a user to an organization with a role. At most one
// membership exists per (user, organization) pair.
type Membership struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}
