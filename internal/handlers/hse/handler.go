// Package hse serves incident reports and permits to work.
package hse

import (
	"database/sql"
	"time"

	"fieldops/internal/store"
	"fieldops/internal/websocket"
)

// Handler holds dependencies for HSE handlers.
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
