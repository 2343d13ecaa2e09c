package storage

import (
	"errors"
	"testing"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
)

func TestMemoryStoreLoadCRUD(t *testing.T) {
	s := NewMemoryStore()

	l, err := s.CreateLoad(models.Load{Origin: "Chicago, IL", Destination: "Dallas, TX", Amount: "1000", Status: models.StatusBooked})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if l.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if l.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}

	got, err := s.GetLoad(l.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Origin != "Chicago, IL" {
		t.Fatalf("got wrong load: %+v", got)
	}

	got.Status = models.StatusDelivered
	updated, err := s.UpdateLoad(got)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.StatusDelivered {
		t.Fatalf("status not updated: %+v", updated)
	}
	if !updated.CreatedAt.Equal(l.CreatedAt) {
		t.Fatal("update must not change created_at")
	}

	if err := s.DeleteLoad(l.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetLoad(l.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteLoad(l.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete should be ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreListLoadsOrderedByID(t *testing.T) {
	s := NewMemoryStore()
	for _, origin := range []string{"a", "b", "c"} {
		if _, err := s.CreateLoad(models.Load{Origin: origin}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	loads, err := s.ListLoads()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(loads) != 3 {
		t.Fatalf("expected 3 loads, got %d", len(loads))
	}
	for i := 1; i < len(loads); i++ {
		if loads[i-1].ID >= loads[i].ID {
			t.Fatalf("list not ordered by id: %+v", loads)
		}
	}
}

func TestMemoryStoreUpdateMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.UpdateUser(models.User{ID: 99, Name: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.UpdateDriver(models.Driver{ID: 99}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreAssignments(t *testing.T) {
	s := NewMemoryStore()

	disp, _ := s.CreateUser(models.User{Name: "Dana", Role: "dispatcher"})
	drv, _ := s.CreateDriver(models.Driver{Name: "Pat", Percentage: "10"})

	a := models.Assignment{DispatcherID: disp.ID, DriverID: drv.ID}
	if err := s.CreateAssignment(a); err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	if err := s.CreateAssignment(a); !errors.Is(err, ErrAssignmentExists) {
		t.Fatalf("duplicate pair should be ErrAssignmentExists, got %v", err)
	}

	drivers, err := s.DriversForDispatcher(disp.ID)
	if err != nil {
		t.Fatalf("drivers for dispatcher: %v", err)
	}
	if len(drivers) != 1 || drivers[0].ID != drv.ID {
		t.Fatalf("expected [%d], got %+v", drv.ID, drivers)
	}

	dispatchers, err := s.DispatchersForDriver(drv.ID)
	if err != nil {
		t.Fatalf("dispatchers for driver: %v", err)
	}
	if len(dispatchers) != 1 || dispatchers[0].ID != disp.ID {
		t.Fatalf("expected [%d], got %+v", disp.ID, dispatchers)
	}

	if err := s.DeleteAssignment(a); err != nil {
		t.Fatalf("delete assignment: %v", err)
	}
	if err := s.DeleteAssignment(a); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting missing pair should be ErrNotFound, got %v", err)
	}

	all, err := s.ListAssignments()
	if err != nil {
		t.Fatalf("list assignments: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty assignment list, got %+v", all)
	}
}
