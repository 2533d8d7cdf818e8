package operations

import (
	"fmt"
	"net/http"
	"strconv"

	"fieldops/internal/audit"
	"fieldops/internal/models"
	"fieldops/internal/response"
	"fieldops/internal/validation"
)

// SensorEventInput is a simulated instrument reading to evaluate.
type SensorEventInput struct {
	Tag       string  `json:"tag"`
	Pressure  float64 `json:"pressure"`
	Threshold float64 `json:"threshold"`
}

// SensorEventResult reports whether the reading tripped the rule.
type SensorEventResult struct {
	Triggered    bool                 `json:"triggered"`
	Notification *models.Notification `json:"notification,omitempty"`
}

// EvaluateSensorEvent handles POST /api/v1/sensor-events. Demo rule:
// a pressure reading above the threshold raises a P1 notification
// assigned to the area operator.
func (h *Handler) EvaluateSensorEvent(w http.ResponseWriter, r *http.Request) {
	in := SensorEventInput{Tag: "V-210", Threshold: 8.0}
	if err := response.DecodeBody(r, &in); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	ve := &validation.ValidationErrors{}
	validation.RequireField(ve, "tag", in.Tag)
	validation.ValidatePositive(ve, "threshold", in.Threshold)
	if ve.HasErrors() {
		response.Err(w, ve.Error(), 400)
		return
	}

	if in.Pressure <= in.Threshold {
		response.JSON(w, SensorEventResult{Triggered: false})
		return
	}

	n, err := h.createNotification(CreateNotificationInput{
		Tag:        in.Tag,
		Title:      "High pressure alarm " + in.Tag,
		Reason:     fmt.Sprintf("P=%.1f > %.1f", in.Pressure, in.Threshold),
		Priority:   "P1",
		AssignedTo: "Operator 1",
	}, "Simulated IoT event")
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	audit.LogAudit(h.Audit, h.Hub, "iot-simulator", audit.ActionCreate, "notifications",
		strconv.Itoa(n.ID), "Sensor event raised P1 notification for "+in.Tag)
	response.JSON(w, SensorEventResult{Triggered: true, Notification: &n})
}
