package query

import (
	"sort"
	"strings"
	"time"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
)

// Sort keys and directions accepted by Criteria. Anything else falls back to
// the pickup-date ascending default the dashboard starts with.
const (
	SortByPickup  = "pickup"
	SortByDropoff = "dropoff"
	SortByID      = "id"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Criteria is the view state of the load dashboard: every field is optional
// and the set filters are ANDed together. Zero ids and empty strings mean
// "not filtering on this".
type Criteria struct {
	DriverID      int64
	DispatcherID  int64
	Status        string
	PaymentStatus string
	Search        string
	SortBy        string
	SortOrder     string
}

// Select filters, searches and sorts loads according to c. It is a pure
// function: the input slice is never mutated and malformed field values
// degrade (non-matching, or sorting as the smallest value) instead of
// failing. Sorting is stable, so ties keep their incoming relative order.
func Select(loads []models.Load, c Criteria) []models.Load {
	out := make([]models.Load, 0, len(loads))
	for _, l := range loads {
		if !matchesFilters(l, c) {
			continue
		}
		if !matchesSearch(l, c.Search) {
			continue
		}
		out = append(out, l)
	}
	sortLoads(out, c.SortBy, c.SortOrder)
	return out
}

func matchesFilters(l models.Load, c Criteria) bool {
	if c.DriverID != 0 && l.DriverID != c.DriverID {
		return false
	}
	if c.DispatcherID != 0 && l.DispatcherID != c.DispatcherID {
		return false
	}
	if c.Status != "" && l.Status != c.Status {
		return false
	}
	if c.PaymentStatus != "" && l.PaymentStatus != c.PaymentStatus {
		return false
	}
	return true
}

// matchesSearch reports whether any field of the load contains the query,
// case-insensitively. A blank query matches everything.
func matchesSearch(l models.Load, search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	for _, f := range l.SearchFields() {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func sortLoads(loads []models.Load, sortBy, order string) {
	desc := order == OrderDesc
	var cmp func(a, b models.Load) int
	switch sortBy {
	case SortByDropoff:
		cmp = func(a, b models.Load) int {
			return parseWhen(a.DropoffTime).Compare(parseWhen(b.DropoffTime))
		}
	case SortByID:
		cmp = func(a, b models.Load) int {
			switch {
			case a.ID < b.ID:
				return -1
			case a.ID > b.ID:
				return 1
			}
			return 0
		}
	default: // SortByPickup
		cmp = func(a, b models.Load) int {
			return parseWhen(a.PickupTime).Compare(parseWhen(b.PickupTime))
		}
	}
	sort.SliceStable(loads, func(i, j int) bool {
		if desc {
			return cmp(loads[i], loads[j]) > 0
		}
		return cmp(loads[i], loads[j]) < 0
	})
}

// Layouts dispatchers have historically gotten into the pickup/dropoff
// fields: RFC3339 from the API, datetime-local from the old form UI, and a
// couple of spreadsheet-paste shapes.
var whenLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseWhen parses a timestamp field leniently. Anything unparsable (or
// empty) becomes the zero time, which sorts before every real timestamp.
func parseWhen(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range whenLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
