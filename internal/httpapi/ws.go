package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// The dashboard is served from another origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleBoardWS upgrades a dashboard tab to a websocket and registers it for
// load-event broadcasts. The read pump only exists to notice the close.
func (s *Server) handleBoardWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "upgrade failed", http.StatusBadRequest)
		return
	}
	clientID := newID()
	s.Board.Add(clientID, conn)
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.Board.Remove(clientID)
				return
			}
		}
	}()
}
