// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store holds the persistence side of the sync engine: the SQLite
// database that keeps the device's local copy of every record, and the
// PostgreSQL database that acts as the shared remote store.
//
// Repositories are generic over the record type so that one implementation
// serves accounts, transactions, budgets and goals alike. Every record is
// stored as a JSON document next to the columns the sync engine queries on
// (id, updated_at, last_synced_at / changed_at).
package store

import (
	"context"
	"time"

	"github.com/MKhiriev/wealthwise-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// LocalRepository is the device-local copy of one entity type.
type LocalRepository[T models.Syncable] interface {
	// QueryDirty returns every record matching rule. Records that were never
	// synced always match.
	QueryDirty(ctx context.Context, rule models.DirtyRule) ([]T, error)

	// Get loads a single record. Returns [ErrRecordNotFound] if id is unknown.
	Get(ctx context.Context, id string) (T, error)

	// Save inserts or overwrites records keyed by id, including their
	// last-synced timestamp.
	Save(ctx context.Context, records ...T) error

	// Delete removes a record. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// MarkSynced stamps the last-synced timestamp of id. An unknown id is a
	// no-op: the record may have been deleted while its push was in flight.
	MarkSynced(ctx context.Context, id string, at time.Time) error
}

// RemoteRepository is the shared remote copy of one entity type.
type RemoteRepository[T models.Syncable] interface {
	// Upsert creates or overwrites the record keyed by its id. Pushing the
	// same record twice is safe. Errors wrapping [ErrRemoteUnavailable]
	// mean the whole store is unreachable, any other error concerns this
	// record only.
	Upsert(ctx context.Context, record T) error
}

// ChangeFeed is implemented by remote repositories that can list records
// changed after a cursor. Without it the sync engine is upload-only.
type ChangeFeed[T models.Syncable] interface {
	// ChangedSince returns records changed strictly after since, oldest
	// first, and the cursor to pass on the next call.
	ChangedSince(ctx context.Context, since time.Time) ([]T, time.Time, error)
}

// CheckpointRepository persists the download cursor of each entity type.
type CheckpointRepository interface {
	// GetCheckpoint returns the stored cursor, or the zero time if the
	// entity type was never pulled.
	GetCheckpoint(ctx context.Context, entity models.EntityType) (time.Time, error)

	// SetCheckpoint stores cursor for entity.
	SetCheckpoint(ctx context.Context, entity models.EntityType, cursor time.Time) error
}

// SyncHistoryRepository records the outcome of successful full syncs.
type SyncHistoryRepository interface {
	// SaveResult appends result to the history.
	SaveResult(ctx context.Context, result models.SyncResult) error

	// LastResult returns the most recent result. found is false when no
	// sync has completed yet.
	LastResult(ctx context.Context) (result models.SyncResult, found bool, err error)
}

// Remotes is the set of remote repositories a client syncs against, one
// per entity type. Both the PostgreSQL store and the HTTP adapter provide
// one.
type Remotes struct {
	Accounts     RemoteRepository[*models.Account]
	Transactions RemoteRepository[*models.Transaction]
	Budgets      RemoteRepository[*models.Budget]
	Goals        RemoteRepository[*models.Goal]
}
