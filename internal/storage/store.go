package storage

import (
	"errors"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
)

// ErrNotFound is returned when a get/update/delete references an id that is
// not in the store.
var ErrNotFound = errors.New("record not found")

// ErrAssignmentExists is returned when creating a dispatcher/driver pair
// that already exists; the pair is the identity, so there is nothing to
// update.
var ErrAssignmentExists = errors.New("assignment already exists")

// RecordStore defines persistence operations for the back-office entities.
// Every list returns full records; callers re-fetch after mutations rather
// than patching incrementally.
type RecordStore interface {
	ListUsers() ([]models.User, error)
	GetUser(id int64) (models.User, error)
	CreateUser(u models.User) (models.User, error)
	UpdateUser(u models.User) (models.User, error)
	DeleteUser(id int64) error

	ListDrivers() ([]models.Driver, error)
	GetDriver(id int64) (models.Driver, error)
	CreateDriver(d models.Driver) (models.Driver, error)
	UpdateDriver(d models.Driver) (models.Driver, error)
	DeleteDriver(id int64) error

	ListLoads() ([]models.Load, error)
	GetLoad(id int64) (models.Load, error)
	CreateLoad(l models.Load) (models.Load, error)
	UpdateLoad(l models.Load) (models.Load, error)
	DeleteLoad(id int64) error

	ListAssignments() ([]models.Assignment, error)
	CreateAssignment(a models.Assignment) error
	DeleteAssignment(a models.Assignment) error
	DriversForDispatcher(dispatcherID int64) ([]models.Driver, error)
	DispatchersForDriver(driverID int64) ([]models.User, error)
}
