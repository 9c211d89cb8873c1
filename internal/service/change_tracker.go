// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/wealthwise-sync/internal/clock"
	"github.com/MKhiriev/wealthwise-sync/internal/config"
	"github.com/MKhiriev/wealthwise-sync/internal/store"
	"github.com/MKhiriev/wealthwise-sync/models"
)

// DefaultStaleThreshold is the age after which [StalePolicy] pushes a
// record again.
const DefaultStaleThreshold = 15 * time.Minute

// DirtyPolicy decides whether a record needs to be pushed.
type DirtyPolicy interface {
	// NeedsSync reports whether rec must be pushed at time now. A record
	// that was never synced always needs sync.
	NeedsSync(rec models.Syncable, now time.Time) bool

	// Rule describes the same predicate to the local store, so that the
	// filtering happens in the query.
	Rule(now time.Time) models.DirtyRule
}

// ModifiedPolicy treats a record as dirty when it changed after its last
// successful push.
type ModifiedPolicy struct{}

// NeedsSync implements [DirtyPolicy].
func (ModifiedPolicy) NeedsSync(rec models.Syncable, _ time.Time) bool {
	lastSynced := rec.GetLastSyncedAt()
	if lastSynced == nil {
		return true
	}
	updated := rec.GetUpdatedAt()
	return updated != nil && updated.After(*lastSynced)
}

// Rule implements [DirtyPolicy].
func (ModifiedPolicy) Rule(now time.Time) models.DirtyRule {
	return models.DirtyRule{Mode: models.DirtyModeModified, Now: now}
}

// StalePolicy treats a record as dirty when its last push is older than
// Threshold, whether or not it changed since. Edits made within Threshold
// of the last push wait for the next window.
type StalePolicy struct {
	Threshold time.Duration
}

// NeedsSync implements [DirtyPolicy].
func (p StalePolicy) NeedsSync(rec models.Syncable, now time.Time) bool {
	lastSynced := rec.GetLastSyncedAt()
	if lastSynced == nil {
		return true
	}
	return lastSynced.Before(now.Add(-p.threshold()))
}

// Rule implements [DirtyPolicy].
func (p StalePolicy) Rule(now time.Time) models.DirtyRule {
	return models.DirtyRule{Mode: models.DirtyModeStale, Now: now, Threshold: p.threshold()}
}

func (p StalePolicy) threshold() time.Duration {
	if p.Threshold <= 0 {
		return DefaultStaleThreshold
	}
	return p.Threshold
}

// NewDirtyPolicy maps the SYNC_DIRTY_POLICY setting to a policy. An empty
// name selects [ModifiedPolicy].
func NewDirtyPolicy(name string, staleThreshold time.Duration) (DirtyPolicy, error) {
	switch name {
	case "", config.DirtyPolicyModified:
		return ModifiedPolicy{}, nil
	case config.DirtyPolicyStale:
		return StalePolicy{Threshold: staleThreshold}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDirtyPolicy, name)
	}
}

// ChangeTracker finds the local records of one entity type that need to be
// pushed and records successful pushes.
type ChangeTracker[T models.Syncable] struct {
	local  store.LocalRepository[T]
	policy DirtyPolicy
	clock  clock.Clock
}

// NewChangeTracker builds a tracker over local. A nil policy selects
// [ModifiedPolicy], a nil clock the system clock.
func NewChangeTracker[T models.Syncable](local store.LocalRepository[T], policy DirtyPolicy, clk clock.Clock) *ChangeTracker[T] {
	if policy == nil {
		policy = ModifiedPolicy{}
	}
	if clk == nil {
		clk = clock.RealClock{}
	}

	return &ChangeTracker[T]{
		local:  local,
		policy: policy,
		clock:  clk,
	}
}

// NeedsSync reports whether rec must be pushed now. It does not touch the
// store.
func (t *ChangeTracker[T]) NeedsSync(rec T) bool {
	return t.policy.NeedsSync(rec, t.clock.Now())
}

// Modified reports whether rec changed locally after its last push. Unlike
// [ChangeTracker.NeedsSync] it ignores the configured policy, so a pull never
// overwrites an unpushed edit that the policy has not scheduled yet.
func (t *ChangeTracker[T]) Modified(rec T) bool {
	return ModifiedPolicy{}.NeedsSync(rec, t.clock.Now())
}

// Dirty returns every local record that needs sync.
func (t *ChangeTracker[T]) Dirty(ctx context.Context) ([]T, error) {
	now := t.clock.Now()

	records, err := t.local.QueryDirty(ctx, t.policy.Rule(now))
	if err != nil {
		return nil, fmt.Errorf("query dirty records: %w", err)
	}

	// the store query may be coarser than the policy, e.g. for rows written
	// by an older schema, so the policy has the last word
	dirty := records[:0]
	for _, rec := range records {
		if t.policy.NeedsSync(rec, now) {
			dirty = append(dirty, rec)
		}
	}

	return dirty, nil
}

// MarkSynced stamps the last-synced time of id. An id that no longer exists
// locally is ignored.
func (t *ChangeTracker[T]) MarkSynced(ctx context.Context, id string, at time.Time) error {
	if err := t.local.MarkSynced(ctx, id, at); err != nil {
		return fmt.Errorf("mark %s synced: %w", id, err)
	}
	return nil
}
