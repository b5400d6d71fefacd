package services

import (
	"context"
	"fmt"
	"sync"

	"nextgenhome/backend/models"
	"nextgenhome/backend/store"
)

// Editor tracks in-progress edits of recommendations, one draft per
// record id. A draft starts from a snapshot of the record, collects
// field changes, and on save commits only the changed fields to the
// store as a partial patch. The mirror itself is never mutated
// locally; it catches up when the subscription redelivers.
type Editor struct {
	store store.Store

	mu     sync.Mutex
	drafts map[string]*draft
}

type draft struct {
	original models.Recommendation
	current  models.Recommendation
}

func NewEditor(st store.Store) *Editor {
	return &Editor{store: st, drafts: make(map[string]*draft)}
}

// Begin opens a draft for the record. Beginning again on the same id
// restarts the draft from the given snapshot.
func (e *Editor) Begin(rec models.Recommendation) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drafts[rec.ID] = &draft{original: rec, current: rec}
}

// Apply merges submitted field values into the draft. Zero-valued
// fields in patch leave the draft untouched, so a partial form post
// only changes what it carries.
func (e *Editor) Apply(id string, patch models.Recommendation) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, ok := e.drafts[id]
	if !ok {
		return fmt.Errorf("no draft open for record %s", id)
	}
	if patch.Title != "" {
		d.current.Title = patch.Title
	}
	if patch.Description != "" {
		d.current.Description = patch.Description
	}
	if patch.Image != "" {
		d.current.Image = patch.Image
	}
	if patch.Cost != "" {
		d.current.Cost = patch.Cost
	}
	if patch.Category != "" {
		d.current.Category = patch.Category
	}
	if patch.Size != "" {
		d.current.Size = patch.Size
	}
	if patch.ItemsNeeded != nil {
		d.current.ItemsNeeded = patch.ItemsNeeded
	}
	return nil
}

// Save commits the draft's changed fields and closes it. On a store
// failure the draft stays open so the admin can retry.
func (e *Editor) Save(ctx context.Context, id string) error {
	e.mu.Lock()
	d, ok := e.drafts[id]
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("no draft open for record %s", id)
	}

	changed := changedFields(d.original, d.current)
	if len(changed) > 0 {
		if err := e.store.Update(ctx, "recommendations", id, changed); err != nil {
			return err
		}
	}

	e.mu.Lock()
	delete(e.drafts, id)
	e.mu.Unlock()
	return nil
}

// Cancel discards the draft.
func (e *Editor) Cancel(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.drafts, id)
}

// Draft returns the current draft state for the record, if any.
func (e *Editor) Draft(id string) (models.Recommendation, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, ok := e.drafts[id]
	if !ok {
		return models.Recommendation{}, false
	}
	return d.current, true
}

func changedFields(original, current models.Recommendation) map[string]interface{} {
	changed := make(map[string]interface{})
	if current.Title != original.Title {
		changed["title"] = current.Title
	}
	if current.Description != original.Description {
		changed["description"] = current.Description
	}
	if current.Image != original.Image {
		changed["image"] = current.Image
	}
	if current.Cost != original.Cost {
		changed["cost"] = current.Cost
	}
	if current.Category != original.Category {
		changed["category"] = current.Category
	}
	if current.Size != original.Size {
		changed["size"] = current.Size
	}
	if !equalStrings(current.ItemsNeeded, original.ItemsNeeded) {
		items := make([]interface{}, len(current.ItemsNeeded))
		for i, item := range current.ItemsNeeded {
			items[i] = item
		}
		changed["itemsNeeded"] = items
	}
	return changed
}

func equalStrings(a, b []string) bool {
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
