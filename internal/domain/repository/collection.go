package repository

import "context"

// CollectionStore defines the persisted key-value store that holds each
// entity collection as one JSON text value.
type CollectionStore interface {
	// Get returns the JSON text stored under key. found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set replaces the JSON text stored under key.
	Set(ctx context.Context, key string, value string) error
}
