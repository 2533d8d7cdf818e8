package admin

import (
	"fmt"
	"log"
	"net/http"

	"fieldops/internal/audit"
	"fieldops/internal/models"
	"fieldops/internal/response"
	"fieldops/internal/store"
	"fieldops/internal/validation"
)

// ListUsers handles GET /api/v1/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	t, warn := h.Store.Load(store.Users)
	if warn != nil {
		log.Printf("warning: %v", warn)
	}
	items := []models.User{}
	for _, row := range t.Rows {
		items = append(items, models.UserFromRow(row))
	}
	response.JSON(w, items)
}

// AddUserInput is the form payload for a new user.
type AddUserInput struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Area string `json:"area"`
}

// AddUser handles POST /api/v1/users. User IDs are short sequential
// labels (u5, u6, ...); users are never deleted or edited afterward.
func (h *Handler) AddUser(w http.ResponseWriter, r *http.Request) {
	var in AddUserInput
	if err := response.DecodeBody(r, &in); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	ve := &validation.ValidationErrors{}
	validation.RequireField(ve, "name", in.Name)
	validation.RequireField(ve, "role", in.Role)
	validation.ValidateEnum(ve, "role", in.Role, validation.ValidRoles)
	validation.ValidateMaxLength(ve, "name", in.Name, 100)
	if ve.HasErrors() {
		response.Err(w, ve.Error(), 400)
		return
	}

	var u models.User
	_, err := h.Store.Mutate(store.Users, func(t store.Table) (store.Table, error) {
		u = models.User{
			UserID: fmt.Sprintf("u%d", len(t.Rows)+1),
			Name:   in.Name,
			Role:   in.Role,
			Area:   in.Area,
		}
		return t.Append(u.Row()), nil
	})
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	audit.LogAudit(h.Audit, h.Hub, in.Name, audit.ActionCreate, "users", u.UserID, "Added user "+u.Name)
	response.JSON(w, u)
}

// ListAssets handles GET /api/v1/assets. Assets are seed-only
// reference data for populating selection inputs.
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	t, warn := h.Store.Load(store.Assets)
	if warn != nil {
		log.Printf("warning: %v", warn)
	}
	items := []models.Asset{}
	for _, row := range t.Rows {
		items = append(items, models.AssetFromRow(row))
	}
	response.JSON(w, items)
}

// ListAuditLog handles GET /api/v1/audit.
func (h *Handler) ListAuditLog(w http.ResponseWriter, r *http.Request) {
	entries, err := audit.ListEntries(h.Audit, 50)
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	response.JSON(w, entries)
}
