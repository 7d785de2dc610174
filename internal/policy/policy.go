// Package policy holds the pure authorization decisions. No I/O, no side
// effects: every function maps (role, action) to allow or deny.
package policy

import (
	"github.com/google/uuid"

	"github.com/dohmens-hub/backend/internal/models"
)

// CanAccessAdminPanel allows only administrators into the admin view.
func CanAccessAdminPanel(role models.Role) bool {
	return role == models.RoleAdmin
}

// CanEditOrganization gates org-edit affordances to the leader-or-admin set.
func CanEditOrganization(role models.Role) bool {
	switch role {
	case models.RoleAdmin, models.RoleFaculty, models.RoleClubLeader:
		return true
	}
	return false
}

// CanChangeRole decides whether actingUser may set targetUser's role to
// newRole. The one blocked transition is an admin demoting themselves;
// an admin demoting a different admin is still permitted even when that
// would leave the system without one.
func CanChangeRole(actingUserID, targetUserID uuid.UUID, newRole, actingRole models.Role) bool {
	if actingUserID == targetUserID && newRole != models.RoleAdmin && actingRole == models.RoleAdmin {
		return false
	}
	return true
}

// CanMutateMembership allows membership joins and leaves only on the
// principal's own identity.
func CanMutateMembership(actingUserID, membershipUserID uuid.UUID) bool {
	return actingUserID == membershipUserID
}
