package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
)

type assignmentKey struct {
	dispatcherID int64
	driverID     int64
}

// MemoryStore is an in-memory RecordStore used as the no-database fallback
// and in tests.
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[int64]models.User
	drivers     map[int64]models.Driver
	loads       map[int64]models.Load
	assignments map[assignmentKey]struct{}
	nextID      int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[int64]models.User),
		drivers:     make(map[int64]models.Driver),
		loads:       make(map[int64]models.Load),
		assignments: make(map[assignmentKey]struct{}),
	}
}

func (m *MemoryStore) allocID() int64 {
	m.nextID++
	return m.nextID
}

func (m *MemoryStore) ListUsers() ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetUser(id int64) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (m *MemoryStore) CreateUser(u models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.allocID()
	m.users[u.ID] = u
	return u, nil
}

func (m *MemoryStore) UpdateUser(u models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return models.User{}, ErrNotFound
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *MemoryStore) DeleteUser(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *MemoryStore) ListDrivers() ([]models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetDriver(id int64) (models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.drivers[id]
	if !ok {
		return models.Driver{}, ErrNotFound
	}
	return d, nil
}

func (m *MemoryStore) CreateDriver(d models.Driver) (models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = m.allocID()
	m.drivers[d.ID] = d
	return d, nil
}

func (m *MemoryStore) UpdateDriver(d models.Driver) (models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[d.ID]; !ok {
		return models.Driver{}, ErrNotFound
	}
	m.drivers[d.ID] = d
	return d, nil
}

func (m *MemoryStore) DeleteDriver(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[id]; !ok {
		return ErrNotFound
	}
	delete(m.drivers, id)
	return nil
}

func (m *MemoryStore) ListLoads() ([]models.Load, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Load, 0, len(m.loads))
	for _, l := range m.loads {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetLoad(id int64) (models.Load, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.loads[id]
	if !ok {
		return models.Load{}, ErrNotFound
	}
	return l, nil
}

func (m *MemoryStore) CreateLoad(l models.Load) (models.Load, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = m.allocID()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	m.loads[l.ID] = l
	return l, nil
}

func (m *MemoryStore) UpdateLoad(l models.Load) (models.Load, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.loads[l.ID]
	if !ok {
		return models.Load{}, ErrNotFound
	}
	// creation time is immutable
	l.CreatedAt = prev.CreatedAt
	m.loads[l.ID] = l
	return l, nil
}

func (m *MemoryStore) DeleteLoad(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.loads[id]; !ok {
		return ErrNotFound
	}
	delete(m.loads, id)
	return nil
}

func (m *MemoryStore) ListAssignments() ([]models.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Assignment, 0, len(m.assignments))
	for k := range m.assignments {
		out = append(out, models.Assignment{DispatcherID: k.dispatcherID, DriverID: k.driverID})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DispatcherID != out[j].DispatcherID {
			return out[i].DispatcherID < out[j].DispatcherID
		}
		return out[i].DriverID < out[j].DriverID
	})
	return out, nil
}

func (m *MemoryStore) CreateAssignment(a models.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := assignmentKey{a.DispatcherID, a.DriverID}
	if _, ok := m.assignments[k]; ok {
		return ErrAssignmentExists
	}
	m.assignments[k] = struct{}{}
	return nil
}

func (m *MemoryStore) DeleteAssignment(a models.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := assignmentKey{a.DispatcherID, a.DriverID}
	if _, ok := m.assignments[k]; !ok {
		return ErrNotFound
	}
	delete(m.assignments, k)
	return nil
}

func (m *MemoryStore) DriversForDispatcher(dispatcherID int64) ([]models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Driver{}
	for k := range m.assignments {
		if k.dispatcherID != dispatcherID {
			continue
		}
		if d, ok := m.drivers[k.driverID]; ok {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) DispatchersForDriver(driverID int64) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.User{}
	for k := range m.assignments {
		if k.driverID != driverID {
			continue
		}
		if u, ok := m.users[k.dispatcherID]; ok {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
