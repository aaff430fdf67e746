// Package cache persists the last confirmed remote snapshot and small
// key/value metadata (such as the cached session) in a local SQLite
// database, so the client can present data and identity before the
// first server round-trip completes.
package cache

import (
	"context"

	"github.com/dmitrijs2005/bpkeeper/internal/client/models"
)

// SnapshotRepository stores the last server-confirmed reading snapshot
// per owner.
type SnapshotRepository interface {
	// Load returns the cached readings for userID, newest first.
	// A missing cache yields an empty slice, not an error.
	Load(ctx context.Context, userID string) ([]models.Reading, error)

	// Replace atomically swaps the cached snapshot for userID.
	Replace(ctx context.Context, userID string, readings []models.Reading) error
}

// MetadataRepository is a small key/value store for client-local state.
type MetadataRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
