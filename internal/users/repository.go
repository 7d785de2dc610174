// Package users persists user profiles in the external store's "users"
// collection.
package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dohmens-hub/backend/internal/models"
	"github.com/dohmens-hub/backend/pkg/store"
)

const table = "users"

// publicColumns excludes the credential hash from read paths that don't
// need it.
const publicColumns = "id,email,full_name,grad_year,role,created_at"

// userRow is the read shape of a users-collection row.
type userRow struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password_hash"`
	FullName  string    `json:"full_name"`
	GradYear  *int      `json:"grad_year"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (r userRow) toUser() *models.User {
	return &models.User{
		ID:        r.ID,
		Email:     r.Email,
		Password:  r.Password,
		FullName:  r.FullName,
		GradYear:  r.GradYear,
		Role:      models.NormalizeRole(r.Role),
		CreatedAt: r.CreatedAt,
	}
}

// Repository handles user profile persistence.
type Repository struct {
	store  *store.Client
	logger *zap.Logger
}

// NewRepository creates a users repository.
func NewRepository(st *store.Client, logger *zap.Logger) *Repository {
	return &Repository{store: st, logger: logger}
}

// GetByID returns the profile for an id, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) *models.User {
	var row userRow
	err := r.store.From(table).Select("*").Eq("id", id.String()).Single(ctx, &row)
	if err != nil {
		store.LogSwallowed(r.logger, "users.get_by_id", err)
		return nil
	}
	return row.toUser()
}

// GetByEmail returns the profile for an email, or nil when absent. The
// returned user includes the credential hash for sign-in checks.
func (r *Repository) GetByEmail(ctx context.Context, email string) *models.User {
	var row userRow
	err := r.store.From(table).Select("*").Eq("email", email).Single(ctx, &row)
	if err != nil {
		store.LogSwallowed(r.logger, "users.get_by_email", err)
		return nil
	}
	return row.toUser()
}

// insertRow is the insert shape: no created_at, so the store stamps the
// creation time itself.
type insertRow struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Password string    `json:"password_hash"`
	FullName string    `json:"full_name"`
	GradYear *int      `json:"grad_year,omitempty"`
	Role     string    `json:"role"`
}

// Create inserts a profile row keyed by the credential id. A uniqueness
// rejection only counts as success when a row with this same id already
// landed (a racing retry of the same sign-up); any other collision, such
// as the email belonging to a different row, is a failure.
func (r *Repository) Create(ctx context.Context, u *models.User) bool {
	row := insertRow{
		ID:       u.ID,
		Email:    u.Email,
		Password: u.Password,
		FullName: u.FullName,
		GradYear: u.GradYear,
		Role:     string(u.Role),
	}
	var created userRow
	err := r.store.From(table).Insert(ctx, row, &created)
	if err != nil {
		var we *store.WriteError
		if errors.As(err, &we) && we.UniqueViolation() {
			if existing := r.GetByID(ctx, u.ID); existing != nil {
				u.CreatedAt = existing.CreatedAt
				return true
			}
			return false
		}
		r.logger.Warn("store operation failed", zap.String("op", "users.create"), zap.Error(err))
		return false
	}
	u.CreatedAt = created.CreatedAt
	return true
}

// List returns every profile ordered by full name ascending. Failures are
// logged and surface as an empty sequence.
func (r *Repository) List(ctx context.Context) []models.UserPublic {
	var rows []userRow
	err := r.store.From(table).Select(publicColumns).Order("full_name", true).Get(ctx, &rows)
	if err != nil {
		store.LogSwallowed(r.logger, "users.list", err)
		return nil
	}
	list := make([]models.UserPublic, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toUser().ToPublic())
	}
	return list
}

// UpdateRole sets a user's role. The caller is responsible for the policy
// checks; this only reports whether the write landed.
func (r *Repository) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) bool {
	patch := map[string]string{"role": string(role)}
	err := r.store.From(table).Eq("id", id.String()).Update(ctx, patch, &userRow{})
	if err != nil {
		store.LogSwallowed(r.logger, "users.update_role", err)
		return false
	}
	return true
}
