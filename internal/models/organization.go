package models

import (
	"time"

	"github.com/google/uuid"
)

// Categories is the fixed display enum for organizations. Stored values
// outside the list are tolerated and fall back to the first entry.
var Categories = []string{
	"Academic",
	"Athletics",
	"Arts & Culture",
	"Community Service",
	"STEM",
	"Student Government",
	"Other",
}

// ValidCategory reports whether the value is in the fixed enum.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

// CategoryOrDefault returns the value if recognized, otherwise the first
// category. Listings must render rows with out-of-enum categories, never
// reject them.
func CategoryOrDefault(s string) string {
	if ValidCategory(s) {
		return s
	}
	return Categories[0]
}

// Organization represents a club, team, or student organization.
type Organization struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	AdvisorName string    `json:"advisor_name"`
	MeetingInfo string    `json:"meeting_info,omitempty"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
}
