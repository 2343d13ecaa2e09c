// Package httpapi serves the back-office REST API consumed by the dashboard
// frontend: CRUD for users, drivers, loads and assignments, server-side load
// querying, and settlement generation.
package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/board"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/events"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/payments"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/settlement"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/storage"
)

// Server wires the record store with the optional collaborators (event
// producer, websocket board, stripe). Events and Stripe may be nil when the
// corresponding backend is not configured; handlers degrade instead of
// failing.
type Server struct {
	Store   storage.RecordStore
	Events  *events.Producer
	Board   *board.Registry
	Stripe  *payments.StripeClient
	Company settlement.Company

	logger *slog.Logger
	mux    *mux.Router
}

func NewServer(store storage.RecordStore, logger *slog.Logger) *Server {
	s := &Server{
		Store:  store,
		Board:  board.NewRegistry(logger),
		logger: logger,
		mux:    mux.NewRouter(),
	}
	s.registerMiddleware()
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.mux.PathPrefix("/api").Subrouter()

	api.HandleFunc("/users", s.handleListUsers).Methods("GET")
	api.HandleFunc("/users", s.handleCreateUser).Methods("POST")
	api.HandleFunc("/users/{id}", s.handleGetUser).Methods("GET")
	api.HandleFunc("/users/{id}", s.handleUpdateUser).Methods("PUT")
	api.HandleFunc("/users/{id}", s.handleDeleteUser).Methods("DELETE")

	api.HandleFunc("/drivers", s.handleListDrivers).Methods("GET")
	api.HandleFunc("/drivers", s.handleCreateDriver).Methods("POST")
	api.HandleFunc("/drivers/{id}", s.handleGetDriver).Methods("GET")
	api.HandleFunc("/drivers/{id}", s.handleUpdateDriver).Methods("PUT")
	api.HandleFunc("/drivers/{id}", s.handleDeleteDriver).Methods("DELETE")

	api.HandleFunc("/loads", s.handleListLoads).Methods("GET")
	api.HandleFunc("/loads", s.handleCreateLoad).Methods("POST")
	api.HandleFunc("/loads/{id}", s.handleGetLoad).Methods("GET")
	api.HandleFunc("/loads/{id}", s.handleUpdateLoad).Methods("PUT")
	api.HandleFunc("/loads/{id}", s.handleDeleteLoad).Methods("DELETE")

	api.HandleFunc("/assignments", s.handleListAssignments).Methods("GET")
	api.HandleFunc("/assignments", s.handleCreateAssignment).Methods("POST")
	api.HandleFunc("/assignments", s.handleDeleteAssignment).Methods("DELETE")
	api.HandleFunc("/assignments/drivers/{dispatcherId}", s.handleDriversForDispatcher).Methods("GET")
	api.HandleFunc("/assignments/dispatchers/{driverId}", s.handleDispatchersForDriver).Methods("GET")

	api.HandleFunc("/settlements/preview", s.handleSettlementPreview).Methods("POST")
	api.HandleFunc("/settlements/charge", s.handleSettlementCharge).Methods("POST")

	s.mux.HandleFunc("/ws/board", s.handleBoardWS)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) }).Methods("GET")
	s.mux.Handle("/metrics", promhttp.Handler())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// storeError maps a store failure onto the response: the single
// human-readable message, verbatim, with the status the failure implies.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, storage.ErrAssignmentExists):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func newID() string { b := make([]byte, 8); _, _ = rand.Read(b); return hex.EncodeToString(b) }
