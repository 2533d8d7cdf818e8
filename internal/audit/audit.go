// Package audit keeps an append-only trail of every mutation against
// the record store. The trail lives in its own sqlite database, apart
// from the CSV datasets, and doubles as the source of the live event
// feed: each logged action is also broadcast over the WebSocket hub.
package audit

import (
	"database/sql"
	"log"

	"fieldops/internal/websocket"

	_ "modernc.org/sqlite"
)

// Action constants.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionExport = "EXPORT"
	ActionSeed   = "SEED"
)

// Entry is one audit trail record.
type Entry struct {
	ID       int    `json:"id"`
	TS       string `json:"ts"`
	Actor    string `json:"actor"`
	Action   string `json:"action"`
	Dataset  string `json:"dataset"`
	RecordID string `json:"record_id"`
	Summary  string `json:"summary"`
}

// InitDB opens (creating if needed) the audit database at path.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts DATETIME DEFAULT CURRENT_TIMESTAMP,
		actor TEXT DEFAULT '',
		action TEXT NOT NULL,
		dataset TEXT NOT NULL,
		record_id TEXT DEFAULT '',
		summary TEXT DEFAULT ''
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// LogAudit records an action against a dataset and mirrors it to the
// hub. Audit failures are logged, never propagated: losing a trail
// entry must not fail the user's action.
func LogAudit(db *sql.DB, hub *websocket.Hub, actor, action, dataset, recordID, summary string) {
	if db != nil {
		_, err := db.Exec("INSERT INTO audit_log (actor, action, dataset, record_id, summary) VALUES (?, ?, ?, ?, ?)",
			actor, action, dataset, recordID, summary)
		if err != nil {
			log.Printf("audit log error: %v", err)
		}
	}
	if hub != nil {
		hub.Broadcast(websocket.Event{Type: dataset, ID: recordID, Action: action})
	}
}

// ListEntries returns the most recent audit entries, newest first.
func ListEntries(db *sql.DB, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query("SELECT id, ts, actor, action, dataset, record_id, summary FROM audit_log ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.TS, &e.Actor, &e.Action, &e.Dataset, &e.RecordID, &e.Summary); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
