package rounds

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

// ListTemplates handles GET /api/v1/rounds/templates. Supports
// ?template= to fetch the rows of a single round.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	t, warn := h.Store.Load(store.RoundTemplates)
	if warn != nil {
		log.Printf("warning: %v", warn)
	}
	name := r.URL.Query().Get("template")
	items := []models.RoundTemplate{}
	for _, row := range t.Rows {
		tpl := models.RoundTemplateFromRow(row)
		if name != "" && tpl.Template != name {
			continue
		}
		items = append(items, tpl)
	}
	response.JSON(w, items)
}

// ListExecutions handles GET /api/v1/rounds/executions. Newest first,
// capped by ?limit (default 20).
func (h *Handler) ListExecutions(w http.ResponseWriter, r *http.Request) {
	t, warn := h.Store.Load(store.RoundExecutions)
	if warn != nil {
		log.Printf("warning: %v", warn)
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	items := make([]models.RoundExecution, 0, len(t.Rows))
	for _, row := range t.Rows {
		items = append(items, models.RoundExecutionFromRow(row))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].TS > items[j].TS })
	if len(items) > limit {
		items = items[:limit]
	}
	response.JSONMeta(w, items, len(t.Rows), 1, limit)
}

// Reading is one submitted value against a template line.
type Reading struct {
	Tag      string  `json:"tag"`
	Variable string  `json:"variable"`
	Value    float64 `json:"value"`
}

// SubmitInput is a completed round pass: one reading per template row.
type SubmitInput struct {
	Template string    `json:"template"`
	Operator string    `json:"operator"`
	Readings []Reading `json:"readings"`
}

// SubmitExecution handles POST /api/v1/rounds/executions. Readings are
// matched to their template line to derive in_range; the whole batch
// takes IDs from a single reserved block and is persisted in one save.
func (h *Handler) SubmitExecution(w http.ResponseWriter, r *http.Request) {
	var in SubmitInput
	if err := response.DecodeBody(r, &in); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	ve := &validation.ValidationErrors{}
	validation.RequireField(ve, "template", in.Template)
	validation.RequireField(ve, "operator", in.Operator)
	if len(in.Readings) == 0 {
		ve.Add("readings", "at least one reading is required")
	}
	if ve.HasErrors() {
		response.Err(w, ve.Error(), 400)
		return
	}

	tpl, warn := h.Store.Load(store.RoundTemplates)
	if warn != nil {
		log.Printf("warning: %v", warn)
	}
	limits := map[string]models.RoundTemplate{}
	for _, row := range tpl.Rows {
		t := models.RoundTemplateFromRow(row)
		if t.Template == in.Template {
			limits[t.Tag+"|"+t.Variable] = t
		}
	}
	if len(limits) == 0 {
		response.Err(w, "unknown template: "+in.Template, 400)
		return
	}
	for _, rd := range in.Readings {
		if _, ok := limits[rd.Tag+"|"+rd.Variable]; !ok {
			response.Err(w, fmt.Sprintf("reading %s/%s is not part of template %s", rd.Tag, rd.Variable, in.Template), 400)
			return
		}
	}

	ts := h.now()
	var created []models.RoundExecution
	_, err := h.Store.Mutate(store.RoundExecutions, func(t store.Table) (store.Table, error) {
		ids := store.ReserveIDs(t, "id", len(in.Readings))
		created = created[:0]
		for i, rd := range in.Readings {
			lim := limits[rd.Tag+"|"+rd.Variable]
			exec := models.RoundExecution{
				ID:       ids[i],
				TS:       ts,
				Template: in.Template,
				Tag:      rd.Tag,
				Variable: rd.Variable,
				Value:    rd.Value,
				InRange:  rd.Value >= lim.LowerLimit && rd.Value <= lim.UpperLimit,
				Operator: in.Operator,
			}
			t = t.Append(exec.Row())
			created = append(created, exec)
		}
		return t, nil
	})
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}

	first := ""
	if len(created) > 0 {
		first = strconv.Itoa(created[0].ID)
	}
	audit.LogAudit(h.Audit, h.Hub, in.Operator, audit.ActionCreate, "round_executions",
		first, fmt.Sprintf("Round %q saved with %d readings", in.Template, len(created)))
	response.JSON(w, created)
}
