package websocket

import (
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"

	"hogar/internal/auth"
)

// HandleWebSocket returns an HTTP handler that upgrades connections to
// WebSocket and runs them as Hub clients. Auth middleware runs before this,
// so the request context always carries a user.
func HandleWebSocket(hub *Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // PWA connects from the app origin and LAN addresses
		})
		if err != nil {
			logger.Warn("websocket accept", "error", err)
			return
		}

		userID := auth.UserID(r.Context())
		logger.Debug("websocket connected", "user_id", userID)

		client := NewClient(hub, conn, userID)
		client.Run(r.Context())

		logger.Debug("websocket disconnected", "user_id", userID)
	}
}
