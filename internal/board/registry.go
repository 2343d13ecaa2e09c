package board

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
)

// Session is one connected dashboard client.
type Session struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *Session) send(ev models.LoadEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(ev)
}

// Registry holds the websocket sessions of open dashboard tabs and fans
// load events out to all of them.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{sessions: make(map[string]*Session), logger: logger}
}

func (r *Registry) Add(clientID string, conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[clientID] = &Session{conn: conn}
}

func (r *Registry) Remove(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[clientID]; ok {
		_ = s.conn.Close()
		delete(r.sessions, clientID)
	}
}

// Broadcast sends the event to every connected client, dropping sessions
// whose writes fail.
func (r *Registry) Broadcast(ev models.LoadEvent) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	sessions := make([]*Session, 0, len(r.sessions))
	for id, s := range r.sessions {
		ids = append(ids, id)
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	for i, s := range sessions {
		if err := s.send(ev); err != nil {
			if r.logger != nil {
				r.logger.Warn("board ws send failed, dropping session", "client_id", ids[i], "error", err)
			}
			r.Remove(ids[i])
		}
	}
}
