package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
)

func (s *Server) handleListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := s.Store.ListDrivers()
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, drivers)
}

func (s *Server) handleGetDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid driver id", http.StatusBadRequest)
		return
	}
	d, err := s.Store.GetDriver(id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleCreateDriver(w http.ResponseWriter, r *http.Request) {
	var d models.Driver
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if d.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	created, err := s.Store.CreateDriver(d)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid driver id", http.StatusBadRequest)
		return
	}
	var d models.Driver
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	d.ID = id
	updated, err := s.Store.UpdateDriver(d)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid driver id", http.StatusBadRequest)
		return
	}
	if err := s.Store.DeleteDriver(id); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
