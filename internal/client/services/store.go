// Package services contains the application services of the Flow client:
// the user preferences store and the kanban and project collections, all
// persisted through the backend's key-value store.
package services

import (
	"context"
	"encoding/json"
)

// BlobStore is the persistence the services need. *storage.Service
// implements it.
type BlobStore interface {
	Save(ctx context.Context, key string, data any) error
	Load(ctx context.Context, key string) (json.RawMessage, error)
}
