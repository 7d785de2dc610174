package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's role in the school hub.
type Role string

const (
	RoleStudent    Role = "student"
	RoleClubLeader Role = "club_leader"
	RoleFaculty    Role = "faculty"
	RoleTeacher    Role = "teacher"
	RoleAdmin      Role = "admin"
)

// Roles lists every recognized role, in display order.
func Roles() []Role {
	return []Role{RoleStudent, RoleClubLeader, RoleFaculty, RoleTeacher, RoleAdmin}
}

// ParseRole returns the matching role and whether the value is recognized.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleClubLeader, RoleFaculty, RoleTeacher, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// NormalizeRole maps stored role values onto the closed enum. Unrecognized
// values degrade to student, the unprivileged tier; they never fail.
func NormalizeRole(s string) Role {
	if r, ok := ParseRole(s); ok {
		return r
	}
	return RoleStudent
}

// User represents a hub user profile. The ID matches the credential issued
// at sign-up.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FullName  string    `json:"full_name"`
	GradYear  *int      `json:"grad_year,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserPublic is User without credential fields for API responses.
type UserPublic struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	GradYear  *int      `json:"grad_year,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToPublic converts User to UserPublic.
func (u *User) ToPublic() UserPublic {
	return UserPublic{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		GradYear:  u.GradYear,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
