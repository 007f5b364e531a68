package storage

import (
	"context"
	"io"
)

// StoredObject describes an object after a successful Put.
type StoredObject struct {
	Key  string
	URL  string
	ETag string
}

// ObjectStore is the bucket behind archived battle logs. Keys are relative
// to the bucket root.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (*StoredObject, error)
	// Delete succeeds for keys that do not exist.
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
