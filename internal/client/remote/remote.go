// Package remote defines the contract with the remote document store
// that masters the reading collection, and its MongoDB implementation.
//
// The contract is deliberately narrow: a filtered live subscription
// delivering whole snapshots, plus create and delete. The store layer
// never merges snapshots; the last one delivered wins.
package remote

import (
	"context"

	"github.com/dmitrijs2005/bpkeeper/internal/client/models"
)

// Snapshot is one full view of the owner's readings, sorted by
// timestamp descending, together with its provenance.
type Snapshot struct {
	Readings []models.Reading

	// FromCache is true when the snapshot is a local cache echo rather
	// than the result of a confirmed server round-trip.
	FromCache bool
}

// Subscription is a live stream of snapshots for one owner.
//
// Updates and Errors are closed when the subscription ends. Close is
// idempotent and safe to call concurrently with channel reads.
type Subscription interface {
	Updates() <-chan Snapshot
	Errors() <-chan error
	Close()
}

// Store is the remote document-store collaborator.
type Store interface {
	// Subscribe opens a live subscription for userID's readings,
	// ordered by timestamp descending. At most one subscription per
	// store session should be active; callers must Close the previous
	// one before opening another.
	Subscribe(ctx context.Context, userID string) (Subscription, error)

	// Create persists a new reading and returns its assigned id.
	// The reading's CreatedAt is assigned here, not by the caller.
	Create(ctx context.Context, r models.Reading) (string, error)

	// Delete removes the reading with the given id.
	Delete(ctx context.Context, id string) error
}
