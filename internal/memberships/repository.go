// Package memberships persists the user↔organization join records and the
// flattened roster reads built on them.
package memberships

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dohmens-hub/backend/internal/models"
	"github.com/dohmens-hub/backend/pkg/store"
)

const table = "memberships"

// RosterEntry is one flattened roster row: membership role plus the joined
// user's identity fields, no nesting.
type RosterEntry struct {
	Role     string    `json:"role"`
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	GradYear *int      `json:"grad_year,omitempty"`
}

// UserMembership is one flattened row of a user's organization list.
type UserMembership struct {
	MembershipRole string    `json:"membership_role"`
	OrgID          uuid.UUID `json:"org_id"`
	OrgName        string    `json:"org_name"`
	OrgCategory    string    `json:"org_category"`
	OrgDescription string    `json:"org_description"`
}

type rosterRow struct {
	Role string `json:"role"`
	User struct {
		ID       uuid.UUID `json:"id"`
		FullName string    `json:"full_name"`
		Email    string    `json:"email"`
		GradYear *int      `json:"grad_year"`
	} `json:"users"`
}

type userOrgRow struct {
	Role string `json:"role"`
	Org  struct {
		ID          uuid.UUID `json:"id"`
		Name        string    `json:"name"`
		Category    string    `json:"category"`
		Description string    `json:"description"`
	} `json:"organizations"`
}

// Repository handles membership persistence.
type Repository struct {
	store  *store.Client
	logger *zap.Logger
	locks  *pairLocks
}

// NewRepository creates a memberships repository.
func NewRepository(st *store.Client, logger *zap.Logger) *Repository {
	return &Repository{store: st, logger: logger, locks: newPairLocks()}
}

// GetStatus returns the membership record for the pair, or nil when the
// user is not a member. Absence is a normal outcome, not an error.
func (r *Repository) GetStatus(ctx context.Context, userID, orgID uuid.UUID) *models.Membership {
	var m models.Membership
	err := r.store.From(table).Select("*").
		Eq("user_id", userID.String()).
		Eq("organization_id", orgID.String()).
		Single(ctx, &m)
	if err != nil {
		store.LogSwallowed(r.logger, "memberships.get_status", err)
		return nil
	}
	return &m
}

// Join adds the user to the organization. Joining twice is an idempotent
// no-op reported as false, and the check-then-insert is serialized per
// (user, org) pair.
func (r *Repository) Join(ctx context.Context, userID, orgID uuid.UUID, role string) bool {
	if role == "" {
		role = models.MembershipRoleMember
	}
	lock := r.locks.acquire(userID, orgID)
	defer r.locks.release(userID, orgID)
	lock.Lock()
	defer lock.Unlock()

	if r.GetStatus(ctx, userID, orgID) != nil {
		return false
	}
	row := map[string]string{
		"user_id":         userID.String(),
		"organization_id": orgID.String(),
		"role":            role,
	}
	if err := r.store.From(table).Insert(ctx, row, &models.Membership{}); err != nil {
		store.LogSwallowed(r.logger, "memberships.join", err)
		return false
	}
	return true
}

// Leave removes the user's membership, false when none existed.
func (r *Repository) Leave(ctx context.Context, userID, orgID uuid.UUID) bool {
	lock := r.locks.acquire(userID, orgID)
	defer r.locks.release(userID, orgID)
	lock.Lock()
	defer lock.Unlock()

	n, err := r.store.From(table).
		Eq("user_id", userID.String()).
		Eq("organization_id", orgID.String()).
		Delete(ctx)
	if err != nil {
		store.LogSwallowed(r.logger, "memberships.leave", err)
		return false
	}
	return n > 0
}

// ListForOrg returns the organization's roster, leaders ahead of members,
// with the joined user fields flattened to the top level.
func (r *Repository) ListForOrg(ctx context.Context, orgID uuid.UUID) []RosterEntry {
	var rows []rosterRow
	err := r.store.From(table).
		Select("role,users!inner(id,full_name,email,grad_year)").
		Eq("organization_id", orgID.String()).
		Get(ctx, &rows)
	if err != nil {
		store.LogSwallowed(r.logger, "memberships.list_for_org", err)
		return nil
	}
	roster := make([]RosterEntry, 0, len(rows))
	for _, row := range rows {
		roster = append(roster, RosterEntry{
			Role:     row.Role,
			UserID:   row.User.ID,
			FullName: row.User.FullName,
			Email:    row.User.Email,
			GradYear: row.User.GradYear,
		})
	}
	sort.SliceStable(roster, func(i, j int) bool {
		li, lj := roster[i].Role == models.MembershipRoleLeader, roster[j].Role == models.MembershipRoleLeader
		if li != lj {
			return li
		}
		if roster[i].Role != roster[j].Role {
			return roster[i].Role < roster[j].Role
		}
		return roster[i].FullName < roster[j].FullName
	})
	return roster
}

// ListForUser returns the organizations the user belongs to, with the
// joined organization fields flattened to the top level.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) []UserMembership {
	var rows []userOrgRow
	err := r.store.From(table).
		Select("role,organizations!inner(id,name,category,description)").
		Eq("user_id", userID.String()).
		Get(ctx, &rows)
	if err != nil {
		store.LogSwallowed(r.logger, "memberships.list_for_user", err)
		return nil
	}
	list := make([]UserMembership, 0, len(rows))
	for _, row := range rows {
		list = append(list, UserMembership{
			MembershipRole: row.Role,
			OrgID:          row.Org.ID,
			OrgName:        row.Org.Name,
			OrgCategory:    row.Org.Category,
			OrgDescription: row.Org.Description,
		})
	}
	return list
}
