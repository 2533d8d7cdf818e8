// Package websocket pushes dataset change events to connected UI
// sessions so an open dashboard can refresh without polling.
package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
)

// Event is the payload broadcast to all connected clients: the dataset
// that changed, the affected record ID, and the action performed.
type Event struct {
	Type   string `json:"type"`
	ID     any    `json:"id"`
	Action string `json:"action"`
}

// client wraps a connection with a mutex for thread-safe writes.
type client struct {
	conn *ws.Conn
	mu   sync.Mutex
}

// Hub maintains connected clients and broadcasts events.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.conn.Close()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends an event to all connected clients. Clients that fail
// to accept the write are dropped.
func (h *Hub) Broadcast(evt Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		err := c.conn.WriteMessage(ws.TextMessage, data)
		c.mu.Unlock()
		if err != nil {
			h.unregister(c)
		}
	}
}

var upgrader = ws.Upgrader{
	// The prototype runs the UI and API on different ports in dev.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the request and keeps the connection registered
// until the client goes away. Inbound messages are discarded; the
// socket is server-push only.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}
	c := &client{conn: conn}
	h.register(c)
	defer h.unregister(c)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
