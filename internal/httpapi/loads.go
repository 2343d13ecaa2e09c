package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/events"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/observability"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/query"
)

// criteriaFromRequest lifts the dashboard's filter/sort selections off the
// query string. Malformed numeric ids mean "filter unset", never an error:
// that keeps the listing total over whatever the client sends.
func criteriaFromRequest(r *http.Request) query.Criteria {
	q := r.URL.Query()
	driverID, _ := strconv.ParseInt(q.Get("driver_id"), 10, 64)
	dispatcherID, _ := strconv.ParseInt(q.Get("dispatcher_id"), 10, 64)
	return query.Criteria{
		DriverID:      driverID,
		DispatcherID:  dispatcherID,
		Status:        q.Get("status"),
		PaymentStatus: q.Get("payment_status"),
		Search:        q.Get("search"),
		SortBy:        q.Get("sort_by"),
		SortOrder:     q.Get("sort_order"),
	}
}

func (s *Server) handleListLoads(w http.ResponseWriter, r *http.Request) {
	loads, err := s.Store.ListLoads()
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.Select(loads, criteriaFromRequest(r)))
}

func (s *Server) handleGetLoad(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid load id", http.StatusBadRequest)
		return
	}
	l, err := s.Store.GetLoad(id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleCreateLoad(w http.ResponseWriter, r *http.Request) {
	var l models.Load
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if l.Status == "" {
		l.Status = models.StatusBooked
	}
	if l.PaymentStatus == "" {
		l.PaymentStatus = models.PaymentUnpaid
	}
	created, err := s.Store.CreateLoad(l)
	if err != nil {
		storeError(w, err)
		return
	}
	observability.LoadsCreated.Inc()
	s.publishLoadEvent(events.LoadCreated, created)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateLoad(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid load id", http.StatusBadRequest)
		return
	}
	var l models.Load
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	l.ID = id
	updated, err := s.Store.UpdateLoad(l)
	if err != nil {
		storeError(w, err)
		return
	}
	observability.LoadsUpdated.Inc()
	s.publishLoadEvent(events.LoadUpdated, updated)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteLoad(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid load id", http.StatusBadRequest)
		return
	}
	l, err := s.Store.GetLoad(id)
	if err != nil {
		storeError(w, err)
		return
	}
	if err := s.Store.DeleteLoad(id); err != nil {
		storeError(w, err)
		return
	}
	observability.LoadsDeleted.Inc()
	s.publishLoadEvent(events.LoadDeleted, l)
	w.WriteHeader(http.StatusNoContent)
}

// publishLoadEvent fans a mutation out to kafka and the websocket board.
// Both paths are best-effort: the mutation already committed.
func (s *Server) publishLoadEvent(evType string, l models.Load) {
	if s.Events != nil {
		if err := s.Events.PublishLoadEvent(evType, l); err != nil {
			observability.EventPublishErrors.Inc()
			s.logger.Warn("load event publish failed", "type", evType, "load_id", l.ID, "error", err)
		}
	}
	if s.Board != nil {
		s.Board.Broadcast(models.LoadEvent{Type: evType, Load: l, At: time.Now()})
	}
}
