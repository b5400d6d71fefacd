// Package store abstracts the hosted document database behind a small
// interface: document CRUD plus collection subscriptions that deliver
// full snapshots. The Firestore implementation is used in production;
// the in-memory implementation backs tests and credential-less dev mode.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no document has the requested id.
var ErrNotFound = errors.New("document not found")

// Document is a single stored document: an opaque store-assigned id
// plus its field values.
type Document struct {
	ID     string
	Fields map[string]interface{}
}

// Snapshot is a complete point-in-time batch of the documents in a
// collection. Each delivered snapshot supersedes any prior one.
type Snapshot []Document

// Subscription is a live listener on a collection. Snapshots arrive on
// Snapshots; listener failures arrive on Errors. Stop cancels the
// listener; after Stop returns no further snapshots are delivered.
type Subscription struct {
	Snapshots <-chan Snapshot
	Errors    <-chan error
	stop      func()
}

// Stop cancels the subscription. Safe to call more than once.
func (s *Subscription) Stop() {
	s.stop()
}

// Store is the document store contract the rest of the backend codes
// against.
type Store interface {
	// Subscribe opens a snapshot listener on a collection. The listener
	// is also cancelled when ctx is done.
	Subscribe(ctx context.Context, collection string) (*Subscription, error)
	// Add creates a document and returns its assigned id.
	Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error)
	// Update applies a partial field patch to an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
	// Get reads a single document, returning ErrNotFound if absent.
	Get(ctx context.Context, collection, id string) (Document, error)
}
