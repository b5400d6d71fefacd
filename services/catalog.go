package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"nextgenhome/backend/store"
)

// Catalog mirrors one document collection from the remote store. Each
// delivered snapshot replaces the mirror wholesale; there is no diffing
// or patching. On a listener error the mirror keeps its last-known
// value and the notifier gets errorMessage. No local retry happens;
// reconnection is the store client's concern.
type Catalog struct {
	store        store.Store
	collection   string
	errorMessage string
	notifier     Notifier

	mu     sync.RWMutex
	mirror store.Snapshot

	stopOnce sync.Once
	stop     func()
	done     chan struct{}
}

func NewCatalog(st store.Store, collection, errorMessage string, notifier Notifier) *Catalog {
	return &Catalog{
		store:        st,
		collection:   collection,
		errorMessage: errorMessage,
		notifier:     notifier,
		done:         make(chan struct{}),
	}
}

// Start opens the subscription and begins mirroring. The subscription
// lives until Stop is called or ctx is cancelled, whichever comes
// first; after that no further snapshots are applied.
func (c *Catalog) Start(ctx context.Context) error {
	sub, err := c.store.Subscribe(ctx, c.collection)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", c.collection, err)
	}
	c.stop = sub.Stop

	go func() {
		defer close(c.done)
		for {
			select {
			case <-ctx.Done():
				sub.Stop()
				return
			case snap, ok := <-sub.Snapshots:
				if !ok {
					return
				}
				c.replace(snap)
			case err, ok := <-sub.Errors:
				if !ok {
					return
				}
				log.Printf("Error fetching %s: %v", c.collection, err)
				c.notifier.Notify(c.errorMessage, SeverityError)
			}
		}
	}()
	return nil
}

// Stop cancels the subscription and waits for snapshot processing to
// finish. Safe to call on every exit path, including after Start
// errors were already handled.
func (c *Catalog) Stop() {
	c.stopOnce.Do(func() {
		if c.stop != nil {
			c.stop()
			<-c.done
		}
	})
}

func (c *Catalog) replace(snap store.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mirror = snap
}

// Snapshot returns a copy of the current mirror in delivered order.
func (c *Catalog) Snapshot() store.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(store.Snapshot, len(c.mirror))
	copy(out, c.mirror)
	return out
}
