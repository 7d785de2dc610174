package organizations

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dohmens-hub/backend/internal/models"
	"github.com/dohmens-hub/backend/pkg/response"
)

// Handler serves the Directory and Detail read endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates an organizations handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// DirectoryEntry is one Directory row. Category is always drawn from the
// display enum; stored values outside it fall back to the first entry.
type DirectoryEntry struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	AdvisorName string    `json:"advisor_name"`
	MeetingInfo string    `json:"meeting_info,omitempty"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	IsVerified  bool      `json:"is_verified"`
}

// Directory handles GET /organizations. Optional query params: "search"
// (case-insensitive substring on name) and "category" (exact match, "All"
// or empty for no filter). Both must match.
func (h *Handler) Directory(c *gin.Context) {
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))
	category := strings.TrimSpace(c.Query("category"))

	orgs := h.repo.List(c.Request.Context())
	entries := make([]DirectoryEntry, 0, len(orgs))
	for _, org := range orgs {
		if !matchesFilter(org, search, category) {
			continue
		}
		entries = append(entries, DirectoryEntry{
			ID:          org.ID,
			Name:        org.Name,
			Description: org.Description,
			Category:    models.CategoryOrDefault(org.Category),
			AdvisorName: org.AdvisorName,
			MeetingInfo: org.MeetingInfo,
			LogoURL:     org.LogoURL,
			IsVerified:  org.IsVerified,
		})
	}
	response.OK(c, entries)
}

func matchesFilter(org models.Organization, search, category string) bool {
	if category != "" && category != "All" && org.Category != category {
		return false
	}
	return search == "" || strings.Contains(strings.ToLower(org.Name), search)
}

// GetByID handles GET /organizations/:id for the Detail view header.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	org := h.repo.GetByID(c.Request.Context(), id)
	if org == nil {
		response.NotFound(c, "organization not found")
		return
	}
	response.OK(c, org)
}
