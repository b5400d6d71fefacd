package services

import (
	"context"
	"fmt"
	"sync"

	"nextgenhome/backend/store"
)

// DeleteGuard enforces the two-phase delete: a delete must be
// requested and then separately confirmed before the store call is
// issued. The remote store has no soft delete, so this is the only
// protection against accidental loss.
type DeleteGuard struct {
	store store.Store

	mu      sync.Mutex
	pending map[string]struct{}
}

func NewDeleteGuard(st store.Store) *DeleteGuard {
	return &DeleteGuard{store: st, pending: make(map[string]struct{})}
}

// Request marks the record as pending deletion.
func (g *DeleteGuard) Request(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending[id] = struct{}{}
}

// Confirm issues the store delete, but only when a matching request is
// pending. Confirming without a request is an error and performs no
// store call. The pending mark is cleared either way.
func (g *DeleteGuard) Confirm(ctx context.Context, id string) error {
	g.mu.Lock()
	_, ok := g.pending[id]
	delete(g.pending, id)
	g.mu.Unlock()
	if !ok {
		return fmt.Errorf("no pending delete request for record %s", id)
	}
	return g.store.Delete(ctx, "recommendations", id)
}

// Cancel clears a pending request without deleting anything.
func (g *DeleteGuard) Cancel(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, id)
}

// Pending reports whether the record has an outstanding delete request.
func (g *DeleteGuard) Pending(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.pending[id]
	return ok
}
