package hse

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"

	"fieldops/internal/audit"
	"fieldops/internal/models"
	"fieldops/internal/response"
	"fieldops/internal/store"
	"fieldops/internal/validation"
)

// ListPermits handles GET /api/v1/permits. Supports ?status=; newest
// request first.
func (h *Handler) ListPermits(w http.ResponseWriter, r *http.Request) {
	t, warn := h.Store.Load(store.Permits)
	if warn != nil {
		log.Printf("warning: %v", warn)
	}
	status := r.URL.Query().Get("status")
	items := []models.Permit{}
	for _, row := range t.Rows {
		p := models.PermitFromRow(row)
		if status != "" && p.Status != status {
			continue
		}
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].RequestedAt > items[j].RequestedAt })
	response.JSON(w, items)
}

// CreatePermitInput is the form payload for a new permit request.
type CreatePermitInput struct {
	Type      string `json:"type"`
	Requester string `json:"requester"`
	Area      string `json:"area"`
}

// CreatePermit handles POST /api/v1/permits. New permits start as a
// Draft without HSE approval.
func (h *Handler) CreatePermit(w http.ResponseWriter, r *http.Request) {
	var in CreatePermitInput
	if err := response.DecodeBody(r, &in); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	ve := &validation.ValidationErrors{}
	validation.RequireField(ve, "type", in.Type)
	validation.RequireField(ve, "requester", in.Requester)
	validation.RequireField(ve, "area", in.Area)
	validation.ValidateEnum(ve, "type", in.Type, validation.ValidPermitTypes)
	if ve.HasErrors() {
		response.Err(w, ve.Error(), 400)
		return
	}

	var p models.Permit
	_, err := h.Store.Mutate(store.Permits, func(t store.Table) (store.Table, error) {
		p = models.Permit{
			ID:          store.NextID(t, "id"),
			RequestedAt: h.now(),
			Type:        in.Type,
			Requester:   in.Requester,
			Area:        in.Area,
			Status:      "Draft",
			HSEApproved: "No",
		}
		return t.Append(p.Row()), nil
	})
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	audit.LogAudit(h.Audit, h.Hub, in.Requester, audit.ActionCreate, "permits",
		strconv.Itoa(p.ID), "Created permit: "+p.Type)
	response.JSON(w, p)
}

// UpdatePermitStatus handles POST /api/v1/permits/{id}/status. Closing
// a permit stamps closed_at; the HSE approval flag may be set in the
// same call.
func (h *Handler) UpdatePermitStatus(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		response.Err(w, "invalid id", 400)
		return
	}
	var in struct {
		Status      string `json:"status"`
		HSEApproved string `json:"hse_approved"`
	}
	if err := response.DecodeBody(r, &in); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	ve := &validation.ValidationErrors{}
	validation.RequireField(ve, "status", in.Status)
	validation.ValidateEnum(ve, "status", in.Status, validation.ValidPermitStatuses)
	validation.ValidateEnum(ve, "hse_approved", in.HSEApproved, validation.ValidHSEApprovals)
	if ve.HasErrors() {
		response.Err(w, ve.Error(), 400)
		return
	}

	var updated models.Permit
	_, err = h.Store.Mutate(store.Permits, func(t store.Table) (store.Table, error) {
		return t.UpdateByID("id", id, func(row store.Row) {
			row["status"] = in.Status
			if in.HSEApproved != "" {
				row["hse_approved"] = in.HSEApproved
			}
			if in.Status == "Closed" {
				row["closed_at"] = h.now()
			}
			updated = models.PermitFromRow(row)
		})
	})
	if err == store.ErrNotFound {
		response.Err(w, "not found", 404)
		return
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	audit.LogAudit(h.Audit, h.Hub, updated.Requester, audit.ActionUpdate, "permits",
		idStr, fmt.Sprintf("Permit %d -> %s", id, in.Status))
	response.JSON(w, updated)
}
