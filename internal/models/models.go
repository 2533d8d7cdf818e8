// Package models defines the typed record shapes for the seven
// datasets plus the JSON envelope shared by all API responses. Each
// record maps to and from the store's string rows so that a missing or
// misnamed column shows up here, not at render time.
package models

import "strconv"

// APIResponse is the standard JSON envelope for all API responses.
type APIResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total int `json:"total,omitempty"`
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// User is a dashboard user. IDs are externally assigned short strings
// (op1, sup1, ...), not store-generated integers.
type User struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Area   string `json:"area"`
}

func (u User) Row() map[string]string {
	return map[string]string{"user_id": u.UserID, "name": u.Name, "role": u.Role, "area": u.Area}
}

func UserFromRow(r map[string]string) User {
	return User{UserID: r["user_id"], Name: r["name"], Role: r["role"], Area: r["area"]}
}

// Asset is a tagged piece of field equipment. Reference data only.
type Asset struct {
	Tag         string `json:"tag"`
	Description string `json:"description"`
	Area        string `json:"area"`
}

func AssetFromRow(r map[string]string) Asset {
	return Asset{Tag: r["tag"], Description: r["description"], Area: r["area"]}
}

// Notification is a maintenance notification raised against an asset.
type Notification struct {
	ID         int    `json:"id"`
	CreatedAt  string `json:"created_at"`
	Tag        string `json:"tag"`
	Title      string `json:"title"`
	Reason     string `json:"reason"`
	Priority   string `json:"priority"`
	Status     string `json:"status"`
	AssignedTo string `json:"assigned_to"`
	ReceivedAt string `json:"received_at"`
	ClosedAt   string `json:"closed_at"`
	Evidence   string `json:"evidence"`
}

func (n Notification) Row() map[string]string {
	return map[string]string{
		"id": strconv.Itoa(n.ID), "created_at": n.CreatedAt, "tag": n.Tag,
		"title": n.Title, "reason": n.Reason, "priority": n.Priority,
		"status": n.Status, "assigned_to": n.AssignedTo,
		"received_at": n.ReceivedAt, "closed_at": n.ClosedAt, "evidence": n.Evidence,
	}
}

func NotificationFromRow(r map[string]string) Notification {
	return Notification{
		ID: atoi(r["id"]), CreatedAt: r["created_at"], Tag: r["tag"],
		Title: r["title"], Reason: r["reason"], Priority: r["priority"],
		Status: r["status"], AssignedTo: r["assigned_to"],
		ReceivedAt: r["received_at"], ClosedAt: r["closed_at"], Evidence: r["evidence"],
	}
}

// RoundTemplate is one (template, tag, variable) line of an inspection
// round with its acceptable reading range.
type RoundTemplate struct {
	Template   string  `json:"template"`
	Tag        string  `json:"tag"`
	Variable   string  `json:"variable"`
	LowerLimit float64 `json:"lower_limit"`
	UpperLimit float64 `json:"upper_limit"`
}

func RoundTemplateFromRow(r map[string]string) RoundTemplate {
	return RoundTemplate{
		Template: r["template"], Tag: r["tag"], Variable: r["variable"],
		LowerLimit: atof(r["lower_limit"]), UpperLimit: atof(r["upper_limit"]),
	}
}

// RoundExecution is one recorded reading of a round pass. Immutable
// once written.
type RoundExecution struct {
	ID       int     `json:"id"`
	TS       string  `json:"ts"`
	Template string  `json:"template"`
	Tag      string  `json:"tag"`
	Variable string  `json:"variable"`
	Value    float64 `json:"value"`
	InRange  bool    `json:"in_range"`
	Operator string  `json:"operator"`
}

func (e RoundExecution) Row() map[string]string {
	return map[string]string{
		"id": strconv.Itoa(e.ID), "ts": e.TS, "template": e.Template,
		"tag": e.Tag, "variable": e.Variable,
		"value":    strconv.FormatFloat(e.Value, 'f', -1, 64),
		"in_range": strconv.FormatBool(e.InRange), "operator": e.Operator,
	}
}

func RoundExecutionFromRow(r map[string]string) RoundExecution {
	inRange, _ := strconv.ParseBool(r["in_range"])
	return RoundExecution{
		ID: atoi(r["id"]), TS: r["ts"], Template: r["template"],
		Tag: r["tag"], Variable: r["variable"], Value: atof(r["value"]),
		InRange: inRange, Operator: r["operator"],
	}
}

// Incident is a reported incident or near miss.
type Incident struct {
	ID          int    `json:"id"`
	TS          string `json:"ts"`
	Tag         string `json:"tag"`
	Title       string `json:"title"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	ReportedBy  string `json:"reported_by"`
	Status      string `json:"status"`
}

func (i Incident) Row() map[string]string {
	return map[string]string{
		"id": strconv.Itoa(i.ID), "ts": i.TS, "tag": i.Tag, "title": i.Title,
		"severity": i.Severity, "description": i.Description,
		"reported_by": i.ReportedBy, "status": i.Status,
	}
}

func IncidentFromRow(r map[string]string) Incident {
	return Incident{
		ID: atoi(r["id"]), TS: r["ts"], Tag: r["tag"], Title: r["title"],
		Severity: r["severity"], Description: r["description"],
		ReportedBy: r["reported_by"], Status: r["status"],
	}
}

// Permit is a permit-to-work / work order gating a field activity.
type Permit struct {
	ID          int    `json:"id"`
	RequestedAt string `json:"requested_at"`
	Type        string `json:"type"`
	Requester   string `json:"requester"`
	Area        string `json:"area"`
	Status      string `json:"status"`
	HSEApproved string `json:"hse_approved"`
	ClosedAt    string `json:"closed_at"`
	Attachments string `json:"attachments"`
}

func (p Permit) Row() map[string]string {
	return map[string]string{
		"id": strconv.Itoa(p.ID), "requested_at": p.RequestedAt, "type": p.Type,
		"requester": p.Requester, "area": p.Area, "status": p.Status,
		"hse_approved": p.HSEApproved, "closed_at": p.ClosedAt, "attachments": p.Attachments,
	}
}

func PermitFromRow(r map[string]string) Permit {
	return Permit{
		ID: atoi(r["id"]), RequestedAt: r["requested_at"], Type: r["type"],
		Requester: r["requester"], Area: r["area"], Status: r["status"],
		HSEApproved: r["hse_approved"], ClosedAt: r["closed_at"], Attachments: r["attachments"],
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
