package server

import (
	"database/sql"

	"fieldops/internal/config"
	"fieldops/internal/store"
	"fieldops/internal/websocket"
)

// App holds shared dependencies for the application.
type App struct {
	Store *store.Store
	Audit *sql.DB
	Hub   *websocket.Hub
	Cfg   config.Config
}
