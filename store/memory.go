package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

// Memory is an in-process Store used by tests and by dev mode when no
// Firebase credentials are configured. Every mutation fans the full
// collection snapshot out to all live subscribers, mimicking the
// snapshot listener behavior of the hosted store. Documents keep
// insertion order within a collection.
type Memory struct {
	mu          sync.Mutex
	collections map[string]*memoryCollection
}

type memoryCollection struct {
	order       []string
	docs        map[string]map[string]interface{}
	subscribers map[*memorySubscriber]struct{}
}

type memorySubscriber struct {
	snapshots chan Snapshot
	errs      chan error
	once      sync.Once
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string]*memoryCollection)}
}

func (m *Memory) collection(name string) *memoryCollection {
	c, ok := m.collections[name]
	if !ok {
		c = &memoryCollection{
			docs:        make(map[string]map[string]interface{}),
			subscribers: make(map[*memorySubscriber]struct{}),
		}
		m.collections[name] = c
	}
	return c
}

func (m *Memory) Subscribe(ctx context.Context, collection string) (*Subscription, error) {
	m.mu.Lock()
	c := m.collection(collection)
	sub := &memorySubscriber{
		snapshots: make(chan Snapshot, 1),
		errs:      make(chan error, 1),
	}
	c.subscribers[sub] = struct{}{}
	sub.deliver(c.snapshot())
	m.mu.Unlock()

	stop := func() {
		m.mu.Lock()
		delete(c.subscribers, sub)
		m.mu.Unlock()
		sub.once.Do(func() {
			close(sub.snapshots)
			close(sub.errs)
		})
	}

	go func() {
		<-ctx.Done()
		stop()
	}()

	return &Subscription{Snapshots: sub.snapshots, Errors: sub.errs, stop: stop}, nil
}

// deliver pushes a snapshot with latest-wins coalescing: if the
// subscriber has not drained the previous snapshot, it is replaced.
func (s *memorySubscriber) deliver(snap Snapshot) {
	for {
		select {
		case s.snapshots <- snap:
			return
		default:
			select {
			case <-s.snapshots:
			default:
			}
		}
	}
}

func (c *memoryCollection) snapshot() Snapshot {
	snap := make(Snapshot, 0, len(c.order))
	for _, id := range c.order {
		fields := make(map[string]interface{}, len(c.docs[id]))
		for k, v := range c.docs[id] {
			fields[k] = v
		}
		snap = append(snap, Document{ID: id, Fields: fields})
	}
	return snap
}

func (c *memoryCollection) broadcast() {
	snap := c.snapshot()
	for sub := range c.subscribers {
		sub.deliver(snap)
	}
}

func (m *Memory) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.collection(collection)
	c.order = append(c.order, id)
	c.docs[id] = copyFields(fields)
	c.broadcast()
	return id, nil
}

// Update merges the given fields into the document, creating it when
// absent. This mirrors a merge-write against the hosted store.
func (m *Memory) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.collection(collection)
	doc, ok := c.docs[id]
	if !ok {
		doc = make(map[string]interface{})
		c.docs[id] = doc
		c.order = append(c.order, id)
	}
	for k, v := range fields {
		doc[k] = v
	}
	c.broadcast()
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.collection(collection)
	if _, ok := c.docs[id]; !ok {
		return nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.broadcast()
	return nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.collection(collection)
	fields, ok := c.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Fields: copyFields(fields)}, nil
}

// EmitError pushes a listener error to every subscriber of the
// collection. Test hook for the subscription error path.
func (m *Memory) EmitError(collection string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for sub := range m.collection(collection).subscribers {
		select {
		case sub.errs <- err:
		default:
		}
	}
}

func copyFields(fields map[string]interface{}) map[string]interface{} {
	copied := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return copied
}

func generateID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate document ID: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
