package organizations

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dohmens-hub/backend/pkg/store"
)

func newDirectoryRouter(t *testing.T, storeHandler http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ts := httptest.NewServer(storeHandler)
	t.Cleanup(ts.Close)
	c, err := store.New(ts.URL, "test-key", zap.NewNop())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	h := NewHandler(NewRepository(c, zap.NewNop()))
	router := gin.New()
	router.GET("/organizations", h.Directory)
	router.GET("/organizations/:id", h.GetByID)
	return router
}

func directoryRows(t *testing.T, router *gin.Engine, target string) []DirectoryEntry {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s = %d, want 200", target, w.Code)
	}
	var body struct {
		Success bool             `json:"success"`
		Data    []DirectoryEntry `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body.Data
}

const twoChessClubs = `[
	{"id":"a60beadb-2d1c-4cf0-b6a9-3c9e0cbe0001","name":"Chess Club","description":"We play chess.","category":"Academic","advisor_name":"Ms. Reyes","is_verified":true,"created_at":"2026-01-05T12:00:00Z"},
	{"id":"a60beadb-2d1c-4cf0-b6a9-3c9e0cbe0002","name":"Chess Masters","description":"Competitive chess.","category":"STEM","advisor_name":"Mr. Ola","is_verified":false,"created_at":"2026-01-06T12:00:00Z"}
]`

func TestDirectorySearchAndCategoryCompose(t *testing.T) {
	router := newDirectoryRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(twoChessClubs))
	})

	cases := []struct {
		name   string
		target string
		want   []string
	}{
		{"substring and category must both match", "/organizations?search=chess&category=Academic", []string{"Chess Club"}},
		{"search alone matches case-insensitively", "/organizations?search=CHESS", []string{"Chess Club", "Chess Masters"}},
		{"category All is no filter", "/organizations?category=All", []string{"Chess Club", "Chess Masters"}},
		{"category alone", "/organizations?category=STEM", []string{"Chess Masters"}},
		{"no match is an empty list", "/organizations?search=robotics", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := directoryRows(t, router, tc.target)
			if len(rows) != len(tc.want) {
				t.Fatalf("got %d rows, want %d", len(rows), len(tc.want))
			}
			for i, name := range tc.want {
				if rows[i].Name != name {
					t.Errorf("row %d = %q, want %q", i, rows[i].Name, name)
				}
			}
		})
	}
}

func TestDirectoryToleratesUnknownCategory(t *testing.T) {
	router := newDirectoryRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":"a60beadb-2d1c-4cf0-b6a9-3c9e0cbe0003","name":"Retro Gaming","description":"CRTs only.","category":"Esports","advisor_name":"Mr. Díaz","is_verified":false,"created_at":"2026-01-07T12:00:00Z"}
		]`))
	})
	rows := directoryRows(t, router, "/organizations")
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Category != "Academic" {
		t.Errorf("out-of-enum category rendered as %q, want the first enum entry", rows[0].Category)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	router := newDirectoryRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/organizations/"+uuid.New().String(), nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("GET missing organization = %d, want 404", w.Code)
	}
}
