package operations

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

// ListNotifications handles GET /api/v1/notifications. Supports
// ?status= and ?priority= filters; newest first.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	t, warn := h.Store.Load(store.Notifications)
	if warn != nil {
		log.Printf("warning: %v", warn)
	}

	status := r.URL.Query().Get("status")
	priority := r.URL.Query().Get("priority")

	items := []models.Notification{}
	for _, row := range t.Rows {
		n := models.NotificationFromRow(row)
		if status != "" && n.Status != status {
			continue
		}
		if priority != "" && n.Priority != priority {
			continue
		}
		items = append(items, n)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt > items[j].CreatedAt })
	response.JSON(w, items)
}

// CreateNotificationInput is the form payload for a new notification.
type CreateNotificationInput struct {
	Tag        string `json:"tag"`
	Title      string `json:"title"`
	Reason     string `json:"reason"`
	Priority   string `json:"priority"`
	AssignedTo string `json:"assigned_to"`
}

// CreateNotification handles POST /api/v1/notifications.
func (h *Handler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var in CreateNotificationInput
	if err := response.DecodeBody(r, &in); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	ve := &validation.ValidationErrors{}
	validation.RequireField(ve, "tag", in.Tag)
	validation.RequireField(ve, "title", in.Title)
	validation.ValidateMaxLength(ve, "title", in.Title, 255)
	validation.ValidateMaxLength(ve, "reason", in.Reason, 500)
	validation.ValidateEnum(ve, "priority", in.Priority, validation.ValidPriorities)
	if ve.HasErrors() {
		response.Err(w, ve.Error(), 400)
		return
	}
	if in.Priority == "" {
		in.Priority = "P2"
	}

	n, err := h.createNotification(in, "")
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	actor := n.AssignedTo
	audit.LogAudit(h.Audit, h.Hub, actor, audit.ActionCreate, "notifications",
		strconv.Itoa(n.ID), "Created notification: "+n.Title)
	response.JSON(w, n)
}

// createNotification appends a Pending notification with the next
// sequential ID and persists the collection.
func (h *Handler) createNotification(in CreateNotificationInput, evidence string) (models.Notification, error) {
	var n models.Notification
	_, err := h.Store.Mutate(store.Notifications, func(t store.Table) (store.Table, error) {
		n = models.Notification{
			ID:         store.NextID(t, "id"),
			CreatedAt:  h.now(),
			Tag:        in.Tag,
			Title:      in.Title,
			Reason:     in.Reason,
			Priority:   in.Priority,
			Status:     "Pending",
			AssignedTo: in.AssignedTo,
			Evidence:   evidence,
		}
		return t.Append(n.Row()), nil
	})
	return n, err
}

// UpdateNotificationStatus handles POST /api/v1/notifications/{id}/status.
// Moving to Received stamps received_at, Completed stamps closed_at;
// other fields are left as they are.
func (h *Handler) UpdateNotificationStatus(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		response.Err(w, "invalid id", 400)
		return
	}
	var in struct {
		Status   string `json:"status"`
		Evidence string `json:"evidence"`
	}
	if err := response.DecodeBody(r, &in); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	ve := &validation.ValidationErrors{}
	validation.RequireField(ve, "status", in.Status)
	validation.ValidateEnum(ve, "status", in.Status, validation.ValidNotificationStatuses)
	if ve.HasErrors() {
		response.Err(w, ve.Error(), 400)
		return
	}

	var updated models.Notification
	_, err = h.Store.Mutate(store.Notifications, func(t store.Table) (store.Table, error) {
		next, err := t.UpdateByID("id", id, func(row store.Row) {
			row["status"] = in.Status
			switch in.Status {
			case "Received":
				row["received_at"] = h.now()
			case "Completed":
				row["closed_at"] = h.now()
			}
			if in.Evidence != "" {
				row["evidence"] = in.Evidence
			}
			updated = models.NotificationFromRow(row)
		})
		return next, err
	})
	if err == store.ErrNotFound {
		response.Err(w, "not found", 404)
		return
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	audit.LogAudit(h.Audit, h.Hub, updated.AssignedTo, audit.ActionUpdate, "notifications",
		idStr, fmt.Sprintf("Notification %d -> %s", id, in.Status))
	response.JSON(w, updated)
}
