package store

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore is the production Store backed by Cloud Firestore.
type Firestore struct {
	client *firestore.Client
}

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

func (f *Firestore) Subscribe(ctx context.Context, collection string) (*Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	snapshots := make(chan Snapshot, 8)
	errs := make(chan error, 1)

	iter := f.client.Collection(collection).Snapshots(ctx)

	go func() {
		defer iter.Stop()
		defer close(snapshots)
		defer close(errs)
		for {
			qs, err := iter.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || ctx.Err() != nil {
					return
				}
				log.Printf("Snapshot listener error on %s: %v", collection, err)
				select {
				case errs <- err:
				case <-ctx.Done():
				}
				return
			}
			snap, err := mapQuerySnapshot(qs)
			if err != nil {
				select {
				case errs <- err:
				case <-ctx.Done():
				}
				return
			}
			select {
			case snapshots <- snap:
			case <-ctx.Done():
				return
			}
		}
	}()

	return &Subscription{Snapshots: snapshots, Errors: errs, stop: cancel}, nil
}

func mapQuerySnapshot(qs *firestore.QuerySnapshot) (Snapshot, error) {
	var snap Snapshot
	docs := qs.Documents
	for {
		doc, err := docs.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot document: %w", err)
		}
		snap = append(snap, Document{ID: doc.Ref.ID, Fields: doc.Data()})
	}
	return snap, nil
}

func (f *Firestore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	ref, _, err := f.client.Collection(collection).Add(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("failed to add document to %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (f *Firestore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	_, err := f.client.Collection(collection).Doc(id).Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (f *Firestore) Delete(ctx context.Context, collection, id string) error {
	_, err := f.client.Collection(collection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (f *Firestore) Get(ctx context.Context, collection, id string) (Document, error) {
	doc, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("failed to read document %s/%s: %w", collection, id, err)
	}
	return Document{ID: doc.Ref.ID, Fields: doc.Data()}, nil
}
