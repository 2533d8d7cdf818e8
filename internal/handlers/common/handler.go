// Package common serves the cross-cutting pages: dashboard KPIs and
// chart series, dataset exports, and the document library listing.
package common

import (
	"database/sql"

	"fieldops/internal/store"
	"fieldops/internal/websocket"
)

// Handler holds dependencies for common handlers.
type Handler struct {
	Store   *store.Store
	Audit   *sql.DB
	Hub     *websocket.Hub
	DocsDir string
}
