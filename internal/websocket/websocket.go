// Package websocket pushes mutation events to connected dashboard clients
// so open views refresh without polling.
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"

	ws "github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is the payload broadcast to all connected clients.
type Event struct {
	Module string `json:"module"`
	Action string `json:"action"`
	ID     int64  `json:"id"`
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
	logger  *zap.Logger
}

// NewHub creates a Hub. logger may be nil.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{clients: make(map[*client]struct{}), logger: logger}
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
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Broadcast sends an event to all connected clients. Clients that fail a
// write are dropped.
func (h *Hub) Broadcast(evt Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		h.logger.Warn("ws marshal error", zap.Error(err))
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
		err := c.conn.WriteMessage(ws.TextMessage, data)
		c.mu.Unlock()
		if err != nil {
			h.unregister(c)
		}
	}
}

var upgrader = ws.Upgrader{
	// The API already allows cross-origin use; the socket carries no
	// sensitive data, only refresh hints.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the request and keeps the connection registered until
// the client goes away.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn}
	h.register(c)

	// Drain (and discard) client messages to detect disconnects.
	go func() {
		defer h.unregister(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
