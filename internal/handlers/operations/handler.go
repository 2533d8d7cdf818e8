// Package operations serves the maintenance notification inbox and
// the simulated sensor-event rule that feeds it.
package operations

import (
	"database/sql"
	"time"

	"fieldops/internal/store"
	"fieldops/internal/websocket"
)

// Handler holds dependencies for operations handlers.
type Handler struct {
	Store *store.Store
	Audit *sql.DB
	Hub   *websocket.Hub

	// NowFunc overrides the timestamp source in tests.
	NowFunc func() string
}

func (h *Handler) now() string {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().Format("2006-01-02 15:04:05")
}
