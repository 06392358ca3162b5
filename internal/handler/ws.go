package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/adventuresync/server/internal/notify"
	"github.com/adventuresync/server/internal/service"
)

// WSHandler upgrades connections for the live notification channel.
type WSHandler struct {
	auth     *service.AuthService
	hub      *notify.Hub
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler. Origin checks are delegated to the
// CORS layer in front of the mux.
func NewWSHandler(auth *service.AuthService, hub *notify.Hub) *WSHandler {
	return &WSHandler{
		auth: auth,
		hub:  hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnect authenticates via the token query parameter, upgrades, and
// keeps the connection registered until the client goes away. A bad token
// closes the upgraded socket immediately with no payload.
// GET /ws?token=...
func (h *WSHandler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("upgrade websocket", "error", err)
		return
	}

	userID, err := h.auth.ValidateToken(r.URL.Query().Get("token"))
	if err != nil {
		conn.Close()
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID, conn)
	defer conn.Close()

	// The channel is push-only. Reading drains control frames and detects
	// the client closing.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
