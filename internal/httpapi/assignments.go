package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
)

func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := s.Store.ListAssignments()
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var a models.Assignment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if a.DispatcherID == 0 || a.DriverID == 0 {
		http.Error(w, "dispatcher_id and driver_id are required", http.StatusBadRequest)
		return
	}
	if err := s.Store.CreateAssignment(a); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// handleDeleteAssignment takes the pair in the body, as the dashboard
// client sends it; the pair is the whole identity of the relation.
func (s *Server) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	var a models.Assignment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.Store.DeleteAssignment(a); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDriversForDispatcher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "dispatcherId")
	if err != nil {
		http.Error(w, "invalid dispatcher id", http.StatusBadRequest)
		return
	}
	drivers, err := s.Store.DriversForDispatcher(id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, drivers)
}

func (s *Server) handleDispatchersForDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "driverId")
	if err != nil {
		http.Error(w, "invalid driver id", http.StatusBadRequest)
		return
	}
	dispatchers, err := s.Store.DispatchersForDriver(id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dispatchers)
}
