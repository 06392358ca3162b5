// Package notify maintains the live WebSocket connection per user and
// pushes JSON notification events to it.
package notify

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/adventuresync/server/internal/domain"
)

// Hub maps each user id to at most one live connection. A new connection
// for the same user silently supersedes the old entry (last-registered
// wins); nothing is queued for disconnected users.
type Hub struct {
	mu    sync.Mutex
	conns map[string]*websocket.Conn
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]*websocket.Conn)}
}

// Register records conn as the user's live connection.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[userID] = conn
}

// Unregister removes the mapping, but only if conn is still the registered
// connection. A superseded connection closing must not evict its
// replacement.
func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == conn {
		delete(h.conns, userID)
	}
}

// Notify pushes n to the user's live connection. If no connection is open
// the call is a silent no-op; a failed write drops the connection.
func (h *Hub) Notify(userID string, n domain.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[userID]
	if !ok {
		return
	}
	if err := conn.WriteJSON(n); err != nil {
		slog.Error("push notification", "user_id", userID, "error", err)
		conn.Close()
		delete(h.conns, userID)
	}
}

// Connected reports whether the user currently has a live connection.
func (h *Hub) Connected(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.conns[userID]
	return ok
}
