package admin

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dohmens-hub/backend/internal/middleware"
	"github.com/dohmens-hub/backend/internal/models"
	"github.com/dohmens-hub/backend/internal/organizations"
	"github.com/dohmens-hub/backend/internal/token"
	"github.com/dohmens-hub/backend/internal/users"
	"github.com/dohmens-hub/backend/pkg/store"
)

type roleChangeFixture struct {
	router  *gin.Engine
	jwt     *token.Service
	patches *[]string // raw PATCH bodies the fake store received
}

func newRoleChangeFixture(t *testing.T) roleChangeFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var patches []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch && r.URL.Path == "/rest/v1/users" {
			if body, err := io.ReadAll(r.Body); err == nil {
				patches = append(patches, string(body))
			}
			w.Write([]byte(`[{"id":"` + uuid.New().String() + `","email":"x@school.edu","full_name":"X","role":"student","created_at":"2026-01-01T00:00:00Z"}]`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(ts.Close)

	c, err := store.New(ts.URL, "test-key", zap.NewNop())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	userRepo := users.NewRepository(c, zap.NewNop())
	orgRepo := organizations.NewRepository(c, zap.NewNop())
	h := NewHandler(userRepo, orgRepo, NewPendingDeletes(time.Minute), zap.NewNop())

	jwtService := token.NewService("test-secret", 1)
	router := gin.New()
	api := router.Group("", middleware.JWT(jwtService))
	adminGroup := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	adminGroup.PUT("/users/:id/role", h.UpdateUserRole)

	return roleChangeFixture{router: router, jwt: jwtService, patches: &patches}
}

func (f roleChangeFixture) put(t *testing.T, tok string, target uuid.UUID, role string) int {
	t.Helper()
	w := httptest.NewRecorder()
	body := strings.NewReader(`{"role":"` + role + `"}`)
	req := httptest.NewRequest(http.MethodPut, "/admin/users/"+target.String()+"/role", body)
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)
	return w.Code
}

func TestRoleChangePolicy(t *testing.T) {
	f := newRoleChangeFixture(t)
	u1 := uuid.New()
	u2 := uuid.New()
	adminToken, err := f.jwt.Generate(u1, "admin@school.edu", "admin")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if code := f.put(t, adminToken, u1, "student"); code != http.StatusForbidden {
		t.Errorf("admin self-demotion = %d, want 403", code)
	}
	if len(*f.patches) != 0 {
		t.Fatal("denied role change must not reach the store")
	}

	if code := f.put(t, adminToken, u1, "admin"); code != http.StatusOK {
		t.Errorf("admin self no-op to admin = %d, want 200", code)
	}
	if code := f.put(t, adminToken, u2, "admin"); code != http.StatusOK {
		t.Errorf("admin promoting another user = %d, want 200", code)
	}
	if len(*f.patches) != 2 {
		t.Errorf("store received %d role writes, want 2", len(*f.patches))
	}
	var patch map[string]string
	if err := json.Unmarshal([]byte((*f.patches)[1]), &patch); err != nil {
		t.Fatalf("decode patch: %v", err)
	}
	if patch["role"] != "admin" {
		t.Errorf("patched role = %q, want admin", patch["role"])
	}
}

func TestRoleChangeRejectsUnknownRole(t *testing.T) {
	f := newRoleChangeFixture(t)
	tok, _ := f.jwt.Generate(uuid.New(), "admin@school.edu", "admin")
	if code := f.put(t, tok, uuid.New(), "wizard"); code != http.StatusBadRequest {
		t.Errorf("unknown role = %d, want 400", code)
	}
}

func TestAdminPanelRequiresAdminRole(t *testing.T) {
	f := newRoleChangeFixture(t)
	for _, role := range []string{"student", "club_leader", "faculty", "teacher"} {
		tok, _ := f.jwt.Generate(uuid.New(), role+"@school.edu", role)
		if code := f.put(t, tok, uuid.New(), "student"); code != http.StatusForbidden {
			t.Errorf("role %q admin access = %d, want 403", role, code)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/users/"+uuid.New().String()+"/role", strings.NewReader(`{"role":"student"}`))
	f.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing token = %d, want 401", w.Code)
	}
}
