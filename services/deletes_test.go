package services

import (
	"context"
	"testing"

	"nextgenhome/backend/store"
)

func TestDeleteRequiresConfirmation(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	id, _ := m.Add(ctx, "recommendations", map[string]interface{}{"title": "Keep until confirmed"})

	guard := NewDeleteGuard(m)

	// Request alone must not delete.
	guard.Request(id)
	if _, err := m.Get(ctx, "recommendations", id); err != nil {
		t.Fatalf("Record deleted before confirmation: %v", err)
	}

	if err := guard.Confirm(ctx, id); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if _, err := m.Get(ctx, "recommendations", id); err != store.ErrNotFound {
		t.Errorf("Expected record gone after confirm, got err=%v", err)
	}
}

func TestConfirmWithoutRequestDoesNotDelete(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	id, _ := m.Add(ctx, "recommendations", map[string]interface{}{"title": "Safe"})

	guard := NewDeleteGuard(m)
	if err := guard.Confirm(ctx, id); err == nil {
		t.Error("Expected confirm without a pending request to fail")
	}
	if _, err := m.Get(ctx, "recommendations", id); err != nil {
		t.Errorf("Record must survive an unconfirmed delete: %v", err)
	}
}

func TestCancelClearsPendingRequest(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	id, _ := m.Add(ctx, "recommendations", map[string]interface{}{"title": "Safe"})

	guard := NewDeleteGuard(m)
	guard.Request(id)
	guard.Cancel(id)

	if guard.Pending(id) {
		t.Error("Expected no pending request after cancel")
	}
	if err := guard.Confirm(ctx, id); err == nil {
		t.Error("Expected confirm after cancel to fail")
	}
	if _, err := m.Get(ctx, "recommendations", id); err != nil {
		t.Errorf("Record must survive a cancelled delete: %v", err)
	}
}
