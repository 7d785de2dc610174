package policy

import (
	"testing"

	"github.com/google/uuid"

	"github.com/dohmens-hub/backend/internal/models"
)

func TestCanAccessAdminPanel(t *testing.T) {
	cases := []struct {
		role models.Role
		want bool
	}{
		{models.RoleAdmin, true},
		{models.RoleFaculty, false},
		{models.RoleTeacher, false},
		{models.RoleClubLeader, false},
		{models.RoleStudent, false},
	}
	for _, tc := range cases {
		if got := CanAccessAdminPanel(tc.role); got != tc.want {
			t.Errorf("CanAccessAdminPanel(%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestCanEditOrganization(t *testing.T) {
	cases := []struct {
		role models.Role
		want bool
	}{
		{models.RoleAdmin, true},
		{models.RoleFaculty, true},
		{models.RoleClubLeader, true},
		{models.RoleTeacher, false},
		{models.RoleStudent, false},
	}
	for _, tc := range cases {
		if got := CanEditOrganization(tc.role); got != tc.want {
			t.Errorf("CanEditOrganization(%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestCanChangeRole(t *testing.T) {
	u1 := uuid.New()
	u2 := uuid.New()

	cases := []struct {
		name       string
		acting     uuid.UUID
		target     uuid.UUID
		newRole    models.Role
		actingRole models.Role
		want       bool
	}{
		{"admin self-demotion denied", u1, u1, models.RoleStudent, models.RoleAdmin, false},
		{"admin self no-op to admin permitted", u1, u1, models.RoleAdmin, models.RoleAdmin, true},
		{"admin promoting another user permitted", u1, u2, models.RoleAdmin, models.RoleAdmin, true},
		{"admin demoting another admin permitted", u1, u2, models.RoleStudent, models.RoleAdmin, true},
		{"admin changing another to faculty permitted", u1, u2, models.RoleFaculty, models.RoleAdmin, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanChangeRole(tc.acting, tc.target, tc.newRole, tc.actingRole); got != tc.want {
				t.Errorf("CanChangeRole = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanMutateMembership(t *testing.T) {
	u1 := uuid.New()
	u2 := uuid.New()
	if !CanMutateMembership(u1, u1) {
		t.Error("a user must be able to mutate their own membership")
	}
	if CanMutateMembership(u1, u2) {
		t.Error("a user must not mutate another user's membership")
	}
}
