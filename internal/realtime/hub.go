// Package realtime fans refresh events out to a user's open websocket connections.
package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gradewise-dev/gradewise/internal/logger"
	"github.com/gradewise-dev/gradewise/internal/types"
)

const writeWait = 10 * time.Second

// Conn serializes writes to one websocket connection.
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

func (c *Conn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteJSON(v)
}

func (c *Conn) WritePing() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.PingMessage, nil)
}

func (c *Conn) Close() error {
	return c.ws.Close()
}

// Message is the payload pushed to clients.
type Message struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	UserID   uint   `json:"userId"`
	Resource string `json:"resource,omitempty"`
}

type Hub struct {
	clients map[uint]map[*Conn]bool
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uint]map[*Conn]bool)}
}

func (h *Hub) Register(userID uint, conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Conn]bool)
	}
	h.clients[userID][conn] = true
}

func (h *Hub) Unregister(userID uint, conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.clients[userID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(h.clients, userID)
		}
	}
}

// Count returns the number of open connections for userID.
func (h *Hub) Count(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// BroadcastRefresh tells every connection of userID that resource changed. Connections
// that fail to receive are dropped.
func (h *Hub) BroadcastRefresh(userID uint, resource string) {
	h.mu.RLock()
	clients, exists := h.clients[userID]
	if !exists || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy so the lock is not held while writing.
	conns := make([]*Conn, 0, len(clients))
	for conn := range clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	msg := Message{
		Type:     types.MessageRefresh,
		Message:  "Data updated",
		UserID:   userID,
		Resource: resource,
	}

	for _, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			logger.Log.WithField("user_id", userID).WithError(err).Warn("Failed to broadcast refresh")
			h.Unregister(userID, conn)
			conn.Close()
		}
	}
}

// Default is the process-wide hub.
var Default = NewHub()

// BroadcastRefresh notifies userID's connections on Default without blocking the caller.
// A slow peer only delays its own delivery.
func BroadcastRefresh(userID uint, resource string) {
	go Default.BroadcastRefresh(userID, resource)
}
