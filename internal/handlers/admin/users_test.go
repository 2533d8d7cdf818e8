package admin_test

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"fieldops/internal/audit"
	"fieldops/internal/handlers/admin"
	"fieldops/internal/models"
	"fieldops/internal/store"
)

func setupHandler(t *testing.T) *admin.Handler {
	t.Helper()
	dir := t.TempDir()
	st := store.New(filepath.Join(dir, "data"))
	if err := st.SeedIfMissing(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	db, err := audit.InitDB(filepath.Join(dir, "audit.db"))
	if err != nil {
		t.Fatalf("audit db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &admin.Handler{Store: st, Audit: db}
}

func decodeData[T any](t *testing.T, body string) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		t.Fatalf("decode response %q: %v", body, err)
	}
	return env.Data
}

func TestListUsersSeeded(t *testing.T) {
	h := setupHandler(t)
	w := httptest.NewRecorder()
	h.ListUsers(w, httptest.NewRequest("GET", "/api/v1/users", nil))
	users := decodeData[[]models.User](t, w.Body.String())
	if len(users) != 4 {
		t.Errorf("users = %d, want 4", len(users))
	}
}

func TestAddUser(t *testing.T) {
	h := setupHandler(t)
	w := httptest.NewRecorder()
	h.AddUser(w, httptest.NewRequest("POST", "/api/v1/users",
		strings.NewReader(`{"name":"Operator 3","role":"Operator","area":"Area B Operations"}`)))

	if w.Code != 200 {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	u := decodeData[models.User](t, w.Body.String())
	if u.UserID != "u5" {
		t.Errorf("user_id = %q, want u5 (4 seeded users)", u.UserID)
	}

	// The mutation must land in the audit trail.
	w = httptest.NewRecorder()
	h.ListAuditLog(w, httptest.NewRequest("GET", "/api/v1/audit", nil))
	entries := decodeData[[]audit.Entry](t, w.Body.String())
	if len(entries) != 1 || entries[0].Dataset != "users" {
		t.Errorf("unexpected audit entries: %+v", entries)
	}
}

func TestAddUserInvalidRole(t *testing.T) {
	h := setupHandler(t)
	w := httptest.NewRecorder()
	h.AddUser(w, httptest.NewRequest("POST", "/api/v1/users",
		strings.NewReader(`{"name":"Someone","role":"Admin"}`)))
	if w.Code != 400 {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestListAssets(t *testing.T) {
	h := setupHandler(t)
	w := httptest.NewRecorder()
	h.ListAssets(w, httptest.NewRequest("GET", "/api/v1/assets", nil))
	assets := decodeData[[]models.Asset](t, w.Body.String())
	if len(assets) != 4 {
		t.Errorf("assets = %d, want 4", len(assets))
	}
	var found bool
	for _, a := range assets {
		if a.Tag == "V-210" {
			found = true
		}
	}
	if !found {
		t.Error("seed asset V-210 missing")
	}
}
