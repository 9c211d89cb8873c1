// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RecordFailure describes one record whose push failed during a sync cycle.
// The record stays dirty and is retried on the next cycle.
type RecordFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// EntitySyncResult is the outcome of syncing one entity type. It is
// consumed by the orchestrator to build the aggregate [SyncResult].
type EntitySyncResult struct {
	Entity            EntityType      `json:"entity"`
	Uploaded          int             `json:"uploaded"`
	Downloaded        int             `json:"downloaded"`
	ConflictsResolved int             `json:"conflicts_resolved"`
	Failed            int             `json:"failed"`
	Failures          []RecordFailure `json:"failures,omitempty"`
}

// Merge adds the counters and failures of other into r.
func (r *EntitySyncResult) Merge(other EntitySyncResult) {
	r.Uploaded += other.Uploaded
	r.Downloaded += other.Downloaded
	r.ConflictsResolved += other.ConflictsResolved
	r.Failed += other.Failed
	r.Failures = append(r.Failures, other.Failures...)
}

// SyncResult is the aggregate outcome of one full sync. It is built once
// per invocation and never mutated afterwards.
type SyncResult struct {
	Uploaded          int                `json:"uploaded"`
	Downloaded        int                `json:"downloaded"`
	ConflictsResolved int                `json:"conflicts_resolved"`
	Failed            int                `json:"failed"`
	Timestamp         time.Time          `json:"timestamp"`
	Entities          []EntitySyncResult `json:"entities,omitempty"`
}

// ForEntity returns the per-entity breakdown for e, if present.
func (r SyncResult) ForEntity(e EntityType) (EntitySyncResult, bool) {
	for _, er := range r.Entities {
		if er.Entity == e {
			return er, true
		}
	}
	return EntitySyncResult{}, false
}

// SyncStatus is the phase of the sync state machine.
type SyncStatus string

const (
	SyncIdle    SyncStatus = "idle"
	SyncSyncing SyncStatus = "syncing"
	SyncSuccess SyncStatus = "success"
	SyncError   SyncStatus = "error"
)

// SyncState is the observable state of the orchestrator.
//
//	Idle → Syncing → Success | Error
//	Success | Error → Syncing
type SyncState struct {
	Status SyncStatus `json:"status"`

	// Message is set only for SyncError.
	Message string `json:"message,omitempty"`

	// Since is when the orchestrator entered Status.
	Since time.Time `json:"since"`
}

// DirtyMode selects how "needs sync" is decided.
type DirtyMode string

const (
	// DirtyModeModified treats a record as dirty when it was modified after
	// its last sync.
	DirtyModeModified DirtyMode = "modified"

	// DirtyModeStale treats a record as dirty when its last sync is older
	// than a threshold, regardless of modifications.
	DirtyModeStale DirtyMode = "stale"
)

// DirtyRule is the storage-facing description of a dirty predicate. Local
// repositories translate it to a query; records that were never synced
// always match.
type DirtyRule struct {
	Mode      DirtyMode
	Now       time.Time
	Threshold time.Duration
}
