package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func waitSnapshot(t *testing.T, sub *Subscription) Snapshot {
	t.Helper()
	select {
	case snap := <-sub.Snapshots:
		return snap
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for snapshot")
		return nil
	}
}

func TestMemorySubscribeDeliversInitialSnapshot(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.Add(ctx, "recommendations", map[string]interface{}{"title": "Kitchen Refresh"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	sub, err := m.Subscribe(ctx, "recommendations")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Stop()

	snap := waitSnapshot(t, sub)
	if len(snap) != 1 {
		t.Fatalf("Expected 1 document, got %d", len(snap))
	}
	if snap[0].ID != id {
		t.Errorf("Expected document ID %s, got %s", id, snap[0].ID)
	}
	if snap[0].Fields["title"] != "Kitchen Refresh" {
		t.Errorf("Expected title 'Kitchen Refresh', got %v", snap[0].Fields["title"])
	}
}

func TestMemoryMutationsBroadcastFullSnapshots(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	sub, err := m.Subscribe(ctx, "recommendations")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Stop()
	waitSnapshot(t, sub) // empty initial snapshot

	first, _ := m.Add(ctx, "recommendations", map[string]interface{}{"title": "A"})
	snap := waitSnapshot(t, sub)
	if len(snap) != 1 {
		t.Fatalf("Expected 1 document after add, got %d", len(snap))
	}

	second, _ := m.Add(ctx, "recommendations", map[string]interface{}{"title": "B"})
	snap = waitSnapshot(t, sub)
	if len(snap) != 2 {
		t.Fatalf("Expected 2 documents after second add, got %d", len(snap))
	}
	// Insertion order is preserved.
	if snap[0].ID != first || snap[1].ID != second {
		t.Errorf("Expected order [%s %s], got [%s %s]", first, second, snap[0].ID, snap[1].ID)
	}

	if err := m.Delete(ctx, "recommendations", first); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	snap = waitSnapshot(t, sub)
	if len(snap) != 1 || snap[0].ID != second {
		t.Errorf("Expected only %s after delete, got %v", second, snap)
	}
}

func TestMemoryUpdateMergesFields(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, _ := m.Add(ctx, "recommendations", map[string]interface{}{
		"title": "Bathroom Remodel",
		"cost":  "$500",
	})

	err := m.Update(ctx, "recommendations", id, map[string]interface{}{"cost": "$750"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	doc, err := m.Get(ctx, "recommendations", id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if doc.Fields["cost"] != "$750" {
		t.Errorf("Expected cost '$750', got %v", doc.Fields["cost"])
	}
	if doc.Fields["title"] != "Bathroom Remodel" {
		t.Errorf("Expected title to survive the patch, got %v", doc.Fields["title"])
	}
}

func TestMemoryGetNotFound(t *testing.T) {
	m := NewMemory()
	_, err := m.Get(context.Background(), "recommendations", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStopEndsDelivery(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	sub, err := m.Subscribe(ctx, "recommendations")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	waitSnapshot(t, sub)
	sub.Stop()

	// Mutations after Stop must not panic and must not reach the
	// cancelled subscriber.
	m.Add(ctx, "recommendations", map[string]interface{}{"title": "late"})

	if snap, ok := <-sub.Snapshots; ok {
		t.Errorf("Expected closed snapshot channel, got %v", snap)
	}
}

func TestMemorySubscribeHonorsContextCancel(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := m.Subscribe(ctx, "recommendations")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	waitSnapshot(t, sub)

	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-sub.Snapshots:
			if !ok {
				return // channel closed after cancel
			}
		case <-deadline:
			t.Fatal("Snapshot channel not closed after context cancel")
		}
	}
}

func TestMemoryEmitError(t *testing.T) {
	m := NewMemory()
	sub, err := m.Subscribe(context.Background(), "recommendations")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Stop()

	injected := errors.New("listener broke")
	m.EmitError("recommendations", injected)

	select {
	case got := <-sub.Errors:
		if !errors.Is(got, injected) {
			t.Errorf("Expected injected error, got %v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for error")
	}
}
