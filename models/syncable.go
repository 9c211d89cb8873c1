// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Syncable is the minimal shape every synchronised record exposes.
// The sync engine never looks past these accessors, so any entity that
// embeds [SyncMeta] can travel through the change tracker, the conflict
// resolver, and the entity sync adapter.
type Syncable interface {
	// GetID returns the stable identity of the record. It is unique within
	// its entity type and never reassigned.
	GetID() string

	// GetUpdatedAt returns the time of the most recent local mutation, or
	// nil for a partially initialised record.
	GetUpdatedAt() *time.Time

	// GetLastSyncedAt returns the time of the last confirmed push to the
	// remote store, or nil if the record has never been synced.
	GetLastSyncedAt() *time.Time

	// SetLastSyncedAt overwrites the last-synced timestamp.
	SetLastSyncedAt(at *time.Time)
}

// SyncMeta carries the synchronisation bookkeeping shared by every entity.
// It is embedded by value in Account, Transaction, Budget and Goal.
type SyncMeta struct {
	// ID is assigned at creation and never changes.
	ID string `json:"id"`

	// UpdatedAt is set on every create/update.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// LastSyncedAt is local-only state: the remote store never sees the
	// device's own bookkeeping.
	LastSyncedAt *time.Time `json:"-"`
}

// GetID implements [Syncable].
func (m *SyncMeta) GetID() string { return m.ID }

// GetUpdatedAt implements [Syncable].
func (m *SyncMeta) GetUpdatedAt() *time.Time { return m.UpdatedAt }

// GetLastSyncedAt implements [Syncable].
func (m *SyncMeta) GetLastSyncedAt() *time.Time { return m.LastSyncedAt }

// SetLastSyncedAt implements [Syncable].
func (m *SyncMeta) SetLastSyncedAt(at *time.Time) { m.LastSyncedAt = at }

// InitSyncMeta prepares the metadata of a freshly created record: the id is
// set and UpdatedAt is stamped, LastSyncedAt stays nil so the record is dirty.
func (m *SyncMeta) InitSyncMeta(id string, now time.Time) {
	m.ID = id
	m.UpdatedAt = &now
	m.LastSyncedAt = nil
}

// Touch stamps UpdatedAt. Call it whenever the underlying entity changes.
func (m *SyncMeta) Touch(now time.Time) {
	m.UpdatedAt = &now
}

// TimePtr returns a pointer to a copy of t.
func TimePtr(t time.Time) *time.Time {
	return &t
}
