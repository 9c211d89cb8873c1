// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the offline-first sync engine and the
// server-side record service.
//
// Client side, every entity type gets an [EntitySyncAdapter] built from a
// [ChangeTracker] and a [ConflictResolver]. The [SyncOrchestrator] runs the
// adapters under a single-flight guard and publishes its state, and
// [SyncJob] triggers it periodically.
//
// Server side, [RecordSyncService] stores pushed records in the shared
// PostgreSQL store and serves its change feed.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/wealthwise-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// EntitySyncer syncs all records of one entity type. [EntitySyncAdapter]
// implements it for every [models.Syncable] type.
type EntitySyncer interface {
	// Entity returns the entity type the syncer is responsible for.
	Entity() models.EntityType

	// Sync reconciles the local and remote copies of the entity type.
	// Failures of single records are reported in the result; an error is
	// returned only when the whole entity sync had to stop, for example
	// because the remote store is unreachable or ctx was cancelled.
	Sync(ctx context.Context) (models.EntitySyncResult, error)
}

// SyncOrchestrator drives a full sync across every entity type and exposes
// the resulting state to observers such as a UI.
type SyncOrchestrator interface {
	// PerformFullSync runs every entity syncer. A concurrent call returns
	// [ErrSyncInProgress] without touching any state. The first syncer error
	// aborts the run and is returned as a *[SyncError]; syncers that already
	// finished are not rolled back.
	PerformFullSync(ctx context.Context) (models.SyncResult, error)

	// State returns the current state.
	State() models.SyncState

	// LastSyncTime returns the timestamp of the last successful full sync.
	// ok is false if none has completed yet.
	LastSyncTime() (t time.Time, ok bool)

	// LastResult returns the result of the last successful full sync.
	LastResult() (result models.SyncResult, ok bool)

	// Subscribe returns a channel receiving state transitions, starting with
	// the current state. Delivery never blocks the orchestrator: a slow
	// reader only sees the latest state. cancel closes the channel.
	Subscribe() (states <-chan models.SyncState, cancel func())

	// RestoreLastSync loads the last successful result from the sync history,
	// so LastSyncTime and LastResult survive a restart.
	RestoreLastSync(ctx context.Context) error
}

// SyncJob runs full syncs periodically in the background.
type SyncJob interface {
	// Start launches the background loop, stopping a previous one first.
	// It returns immediately.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the loop and waits for it to exit. Safe to call when the
	// job is not running.
	Stop()
}

// RecordSyncService is the server side of the HTTP transport: it accepts
// pushed records and serves the change feed of the shared store.
type RecordSyncService interface {
	// Push decodes body as a record of entity and upserts it. id must match
	// the id inside the body.
	Push(ctx context.Context, entity models.EntityType, id string, body json.RawMessage) error

	// Changes lists records of entity changed after since.
	Changes(ctx context.Context, entity models.EntityType, since time.Time) (models.ChangesResponse, error)
}

// AppInfoService exposes build and version information of the server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
