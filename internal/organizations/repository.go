// Package organizations persists clubs and renders the Directory and
// Detail views over them.
package organizations

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dohmens-hub/backend/internal/models"
	"github.com/dohmens-hub/backend/pkg/store"
)

const table = "organizations"

// Input is the full field set for creating or replacing an organization.
type Input struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	AdvisorName string  `json:"advisor_name"`
	MeetingInfo string  `json:"meeting_info,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
	IsVerified  bool    `json:"is_verified"`
}

// Repository handles organization persistence.
type Repository struct {
	store  *store.Client
	logger *zap.Logger
}

// NewRepository creates an organizations repository.
func NewRepository(st *store.Client, logger *zap.Logger) *Repository {
	return &Repository{store: st, logger: logger}
}

// Create inserts an organization. Store rejections (constraint failures)
// come back as the store's write error.
func (r *Repository) Create(ctx context.Context, in Input) (*models.Organization, error) {
	var org models.Organization
	if err := r.store.From(table).Insert(ctx, in, &org); err != nil {
		store.LogSwallowed(r.logger, "organizations.create", err)
		return nil, err
	}
	return &org, nil
}

// List returns all organizations ordered by name ascending. Failures are
// logged and surface as an empty sequence.
func (r *Repository) List(ctx context.Context) []models.Organization {
	var orgs []models.Organization
	err := r.store.From(table).Select("*").Order("name", true).Get(ctx, &orgs)
	if err != nil {
		store.LogSwallowed(r.logger, "organizations.list", err)
		return nil
	}
	return orgs
}

// GetByID returns one organization, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) *models.Organization {
	var org models.Organization
	err := r.store.From(table).Select("*").Eq("id", id.String()).Single(ctx, &org)
	if err != nil {
		store.LogSwallowed(r.logger, "organizations.get_by_id", err)
		return nil
	}
	return &org
}

// Update replaces the full editable field set. A missing id is
// store.ErrNotFound.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, in Input) (*models.Organization, error) {
	var org models.Organization
	if err := r.store.From(table).Eq("id", id.String()).Update(ctx, in, &org); err != nil {
		store.LogSwallowed(r.logger, "organizations.update", err)
		return nil, err
	}
	return &org, nil
}

// Delete removes an organization, reporting success as a boolean. Errors
// never escape this layer.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) bool {
	n, err := r.store.From(table).Eq("id", id.String()).Delete(ctx)
	if err != nil {
		store.LogSwallowed(r.logger, "organizations.delete", err)
		return false
	}
	return n > 0
}
