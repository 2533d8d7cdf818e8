// Package admin serves user management, asset reference data, and the
// audit trail.
package admin

import (
	"database/sql"

	"fieldops/internal/store"
	"fieldops/internal/websocket"
)

// Handler holds dependencies for admin handlers.
type Handler struct {
	Store *store.Store
	Audit *sql.DB
	Hub   *websocket.Hub
}
