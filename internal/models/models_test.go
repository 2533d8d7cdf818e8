package models_test

import (
	"testing"

	"fieldops/internal/models"
)

func TestNotificationRowRoundTrip(t *testing.T) {
	n := models.Notification{
		ID: 3, CreatedAt: "2026-08-29 10:00:00", Tag: "V-210",
		Title: "Check valve", Reason: "Overpressure", Priority: "P1",
		Status: "Pending", AssignedTo: "Operator 1",
	}
	got := models.NotificationFromRow(n.Row())
	if got != n {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, n)
	}
	if n.Row()["received_at"] != "" {
		t.Error("unset optional field should serialize as empty string")
	}
}

func TestRoundExecutionRowParsing(t *testing.T) {
	e := models.RoundExecutionFromRow(map[string]string{
		"id": "7", "ts": "2026-08-29 09:30:00", "template": "Tank Round",
		"tag": "TK-1203", "variable": "Level [%]", "value": "42.5",
		"in_range": "true", "operator": "Operator 2",
	})
	if e.ID != 7 || e.Value != 42.5 || !e.InRange {
		t.Errorf("unexpected parse: %+v", e)
	}
	if e.Row()["value"] != "42.5" || e.Row()["in_range"] != "true" {
		t.Errorf("unexpected serialization: %v", e.Row())
	}
}

func TestRoundTemplateLimitParsing(t *testing.T) {
	tpl := models.RoundTemplateFromRow(map[string]string{
		"template": "Compressor Round", "tag": "K-301",
		"variable": "Suction pressure [bar]", "lower_limit": "2.0", "upper_limit": "5.0",
	})
	if tpl.LowerLimit != 2.0 || tpl.UpperLimit != 5.0 {
		t.Errorf("limits = [%v, %v], want [2, 5]", tpl.LowerLimit, tpl.UpperLimit)
	}
}

func TestMalformedIDReadsAsZero(t *testing.T) {
	n := models.NotificationFromRow(map[string]string{"id": "not-a-number", "status": "Pending"})
	if n.ID != 0 {
		t.Errorf("ID = %d, want 0 for unparseable value", n.ID)
	}
}
