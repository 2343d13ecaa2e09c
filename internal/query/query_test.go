package query

import (
	"testing"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
)

func sampleLoads() []models.Load {
	return []models.Load{
		{ID: 1, Origin: "Chicago, IL", Destination: "Dallas, TX", Status: models.StatusDelivered, PaymentStatus: models.PaymentUnpaid, DriverID: 10, DispatcherID: 100, PickupTime: "2026-03-02T08:00", DropoffTime: "2026-03-03T17:00", Amount: "1000", Miles: "500", BrokerName: "Acme Freight"},
		{ID: 2, Origin: "Denver, CO", Destination: "Phoenix, AZ", Status: models.StatusBooked, PaymentStatus: models.PaymentUnpaid, DriverID: 11, DispatcherID: 100, PickupTime: "2026-03-01T09:30", DropoffTime: "2026-03-02T12:00", Amount: "800", Miles: "600"},
		{ID: 3, Origin: "Atlanta, GA", Destination: "Miami, FL", Status: models.StatusDelivered, PaymentStatus: models.PaymentPaid, DriverID: 10, DispatcherID: 101, PickupTime: "2026-03-05T06:00", DropoffTime: "2026-03-05T21:00", Amount: "650", Miles: "660"},
		{ID: 4, Origin: "Seattle, WA", Destination: "Portland, OR", Status: models.StatusPickedUp, PaymentStatus: models.PaymentInvoiced, DriverID: 12, DispatcherID: 101, PickupTime: "not a date", DropoffTime: "", Amount: "300", Miles: "175"},
	}
}

func ids(loads []models.Load) []int64 {
	out := make([]int64, len(loads))
	for i, l := range loads {
		out[i] = l.ID
	}
	return out
}

func equalIDs(a []int64, b ...int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSelectEmptyCriteriaReturnsAllSorted(t *testing.T) {
	got := Select(sampleLoads(), Criteria{})
	if len(got) != 4 {
		t.Fatalf("expected all 4 loads, got %d", len(got))
	}
	// default sort is pickup ascending; the unparsable pickup sorts first
	if !equalIDs(ids(got), 4, 2, 1, 3) {
		t.Fatalf("unexpected order: %v", ids(got))
	}
}

func TestSelectFiltersAreConjunctive(t *testing.T) {
	got := Select(sampleLoads(), Criteria{DriverID: 10, Status: models.StatusDelivered, PaymentStatus: models.PaymentUnpaid})
	if !equalIDs(ids(got), 1) {
		t.Fatalf("expected only load 1, got %v", ids(got))
	}

	// conflicting filters partition to nothing
	got = Select(sampleLoads(), Criteria{Status: models.StatusBooked, PaymentStatus: models.PaymentPaid})
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", ids(got))
	}

	// payment statuses partition the set: unpaid then paid is empty
	unpaid := Select(sampleLoads(), Criteria{PaymentStatus: models.PaymentUnpaid})
	got = Select(unpaid, Criteria{PaymentStatus: models.PaymentPaid})
	if len(got) != 0 {
		t.Fatalf("expected empty partition, got %v", ids(got))
	}
}

func TestSelectSearchIsCaseInsensitiveSubstring(t *testing.T) {
	got := Select(sampleLoads(), Criteria{Search: "chicago"})
	if !equalIDs(ids(got), 1) {
		t.Fatalf("expected load 1, got %v", ids(got))
	}

	// matches any field, including broker name
	got = Select(sampleLoads(), Criteria{Search: "ACME"})
	if !equalIDs(ids(got), 1) {
		t.Fatalf("expected load 1 via broker name, got %v", ids(got))
	}

	// blank search matches everything
	got = Select(sampleLoads(), Criteria{Search: "   "})
	if len(got) != 4 {
		t.Fatalf("blank search should match all, got %d", len(got))
	}
}

func TestSelectSortModes(t *testing.T) {
	asc := Select(sampleLoads(), Criteria{SortBy: SortByID, SortOrder: OrderAsc})
	if !equalIDs(ids(asc), 1, 2, 3, 4) {
		t.Fatalf("id asc wrong: %v", ids(asc))
	}

	desc := Select(sampleLoads(), Criteria{SortBy: SortByID, SortOrder: OrderDesc})
	for i := range asc {
		if asc[i].ID != desc[len(desc)-1-i].ID {
			t.Fatalf("desc is not the reverse of asc: %v vs %v", ids(asc), ids(desc))
		}
	}

	drop := Select(sampleLoads(), Criteria{SortBy: SortByDropoff, SortOrder: OrderDesc})
	if drop[0].ID != 3 {
		t.Fatalf("expected latest dropoff first, got %v", ids(drop))
	}
	// empty dropoff parses to zero time and sorts last on desc
	if drop[len(drop)-1].ID != 4 {
		t.Fatalf("expected unparsable dropoff last, got %v", ids(drop))
	}
}

func TestSelectIsStableOnTies(t *testing.T) {
	loads := []models.Load{
		{ID: 5, PickupTime: "2026-03-01T09:00"},
		{ID: 6, PickupTime: "2026-03-01T09:00"},
		{ID: 7, PickupTime: "2026-03-01T09:00"},
	}
	got := Select(loads, Criteria{SortBy: SortByPickup, SortOrder: OrderAsc})
	if !equalIDs(ids(got), 5, 6, 7) {
		t.Fatalf("tie order not preserved: %v", ids(got))
	}
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	loads := sampleLoads()
	_ = Select(loads, Criteria{SortBy: SortByID, SortOrder: OrderDesc})
	if !equalIDs(ids(loads), 1, 2, 3, 4) {
		t.Fatalf("input slice was reordered: %v", ids(loads))
	}
}
