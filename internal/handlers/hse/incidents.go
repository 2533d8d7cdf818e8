package hse

import (
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

// ListIncidents handles GET /api/v1/incidents. Supports ?severity=
// and ?status= filters; newest first.
func (h *Handler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	t, warn := h.Store.Load(store.Incidents)
	if warn != nil {
		log.Printf("warning: %v", warn)
	}
	severity := r.URL.Query().Get("severity")
	status := r.URL.Query().Get("status")
	items := []models.Incident{}
	for _, row := range t.Rows {
		inc := models.IncidentFromRow(row)
		if severity != "" && inc.Severity != severity {
			continue
		}
		if status != "" && inc.Status != status {
			continue
		}
		items = append(items, inc)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].TS > items[j].TS })
	response.JSON(w, items)
}

// ReportIncidentInput is the form payload for an incident report.
type ReportIncidentInput struct {
	Tag         string `json:"tag"`
	Title       string `json:"title"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	ReportedBy  string `json:"reported_by"`
}

// ReportIncident handles POST /api/v1/incidents. New incidents open
// in status Open; the prototype has no close action.
func (h *Handler) ReportIncident(w http.ResponseWriter, r *http.Request) {
	var in ReportIncidentInput
	if err := response.DecodeBody(r, &in); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	ve := &validation.ValidationErrors{}
	validation.RequireField(ve, "tag", in.Tag)
	validation.RequireField(ve, "title", in.Title)
	validation.ValidateMaxLength(ve, "title", in.Title, 255)
	validation.ValidateMaxLength(ve, "description", in.Description, 1000)
	validation.ValidateEnum(ve, "severity", in.Severity, validation.ValidSeverities)
	if ve.HasErrors() {
		response.Err(w, ve.Error(), 400)
		return
	}
	if in.Severity == "" {
		in.Severity = "Medium"
	}

	var inc models.Incident
	_, err := h.Store.Mutate(store.Incidents, func(t store.Table) (store.Table, error) {
		inc = models.Incident{
			ID:          store.NextID(t, "id"),
			TS:          h.now(),
			Tag:         in.Tag,
			Title:       in.Title,
			Severity:    in.Severity,
			Description: in.Description,
			ReportedBy:  in.ReportedBy,
			Status:      "Open",
		}
		return t.Append(inc.Row()), nil
	})
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	audit.LogAudit(h.Audit, h.Hub, in.ReportedBy, audit.ActionCreate, "incidents",
		strconv.Itoa(inc.ID), "Reported incident: "+inc.Title)
	response.JSON(w, inc)
}
