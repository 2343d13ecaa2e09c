package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/events"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
)

type fakeUpdater struct {
	statuses map[string]string
	counts   map[string]int64
	failHGet int
	calls    int
}

func newFakeUpdater() *fakeUpdater {
	return &fakeUpdater{statuses: map[string]string{}, counts: map[string]int64{}}
}

func (f *fakeUpdater) HGet(ctx context.Context, key, field string) (string, error) {
	f.calls++
	if f.failHGet > 0 {
		f.failHGet--
		return "", errors.New("transient")
	}
	return f.statuses[key], nil
}

func (f *fakeUpdater) HSet(ctx context.Context, key string, values map[string]interface{}) error {
	if s, ok := values["status"].(string); ok {
		f.statuses[key] = s
	}
	return nil
}

func (f *fakeUpdater) HIncrBy(ctx context.Context, key, field string, incr int64) error {
	f.counts[field] += incr
	return nil
}

func (f *fakeUpdater) Del(ctx context.Context, key string) error {
	delete(f.statuses, key)
	return nil
}

func TestUpdateBoardCountsTransitions(t *testing.T) {
	f := newFakeUpdater()
	ctx := context.Background()

	ev := models.LoadEvent{Type: events.LoadCreated, Load: models.Load{ID: 7, Status: models.StatusBooked}}
	if err := updateBoard(ctx, f, ev); err != nil {
		t.Fatalf("create update failed: %v", err)
	}
	if f.counts[models.StatusBooked] != 1 {
		t.Fatalf("expected booked count 1, got %d", f.counts[models.StatusBooked])
	}

	ev = models.LoadEvent{Type: events.LoadUpdated, Load: models.Load{ID: 7, Status: models.StatusDelivered}}
	if err := updateBoard(ctx, f, ev); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if f.counts[models.StatusBooked] != 0 || f.counts[models.StatusDelivered] != 1 {
		t.Fatalf("counts not moved: %v", f.counts)
	}

	// an update that does not change status must not move counters
	if err := updateBoard(ctx, f, ev); err != nil {
		t.Fatalf("idempotent update failed: %v", err)
	}
	if f.counts[models.StatusDelivered] != 1 {
		t.Fatalf("counter drifted on no-op update: %v", f.counts)
	}

	ev = models.LoadEvent{Type: events.LoadDeleted, Load: models.Load{ID: 7, Status: models.StatusDelivered}}
	if err := updateBoard(ctx, f, ev); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if f.counts[models.StatusDelivered] != 0 {
		t.Fatalf("delete did not decrement: %v", f.counts)
	}
	if _, ok := f.statuses[loadKey(7)]; ok {
		t.Fatal("per-load hash not removed after delete")
	}
}

func TestUpdateBoardWithRetryEventuallySucceeds(t *testing.T) {
	f := newFakeUpdater()
	f.failHGet = 2

	ev := models.LoadEvent{Type: events.LoadCreated, Load: models.Load{ID: 1, Status: models.StatusBooked}}
	if err := updateBoardWithRetry(context.Background(), f, ev, 3, time.Millisecond); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if f.counts[models.StatusBooked] != 1 {
		t.Fatalf("expected booked count 1, got %d", f.counts[models.StatusBooked])
	}
}

func TestUpdateBoardWithRetryGivesUp(t *testing.T) {
	f := newFakeUpdater()
	f.failHGet = 10

	ev := models.LoadEvent{Type: events.LoadCreated, Load: models.Load{ID: 1, Status: models.StatusBooked}}
	if err := updateBoardWithRetry(context.Background(), f, ev, 3, time.Millisecond); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if f.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", f.calls)
	}
}
