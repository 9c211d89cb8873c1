// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/wealthwise-sync/internal/clock"
	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/internal/store"
	"github.com/MKhiriev/wealthwise-sync/internal/validators"
	"github.com/MKhiriev/wealthwise-sync/models"
)

// AdapterOptions tunes an [EntitySyncAdapter].
type AdapterOptions struct {
	// Download enables the remote-to-local direction. It only has an effect
	// when the remote repository implements [store.ChangeFeed] and a
	// checkpoint repository is given.
	Download bool

	// PushTimeout bounds a single Upsert. Zero means no extra bound.
	PushTimeout time.Duration
}

// EntitySyncAdapterDeps are the collaborators of an [EntitySyncAdapter].
// Local, Remote and Tracker are required.
type EntitySyncAdapterDeps[T models.Syncable] struct {
	Local       store.LocalRepository[T]
	Remote      store.RemoteRepository[T]
	Checkpoints store.CheckpointRepository
	Tracker     *ChangeTracker[T]
	Resolver    *ConflictResolver[T]
	Validator   validators.Validator
	Clock       clock.Clock
	Logger      *logger.Logger
}

// EntitySyncAdapter syncs one entity type between the local and the remote
// store. It implements [EntitySyncer].
type EntitySyncAdapter[T models.Syncable] struct {
	entity      models.EntityType
	local       store.LocalRepository[T]
	remote      store.RemoteRepository[T]
	feed        store.ChangeFeed[T]
	checkpoints store.CheckpointRepository
	tracker     *ChangeTracker[T]
	resolver    *ConflictResolver[T]
	validator   validators.Validator
	clock       clock.Clock
	opts        AdapterOptions

	logger *logger.Logger
}

// NewEntitySyncAdapter wires an adapter for entity.
func NewEntitySyncAdapter[T models.Syncable](entity models.EntityType, deps EntitySyncAdapterDeps[T], opts AdapterOptions) (*EntitySyncAdapter[T], error) {
	if !entity.IsValid() {
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownEntity, entity)
	}
	if deps.Local == nil || deps.Remote == nil || deps.Tracker == nil {
		return nil, fmt.Errorf("%w: local, remote and tracker are required", ErrInvalidDataProvided)
	}

	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.ForEntity(entity)

	clk := deps.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}

	resolver := deps.Resolver
	if resolver == nil {
		resolver = NewConflictResolver[T](log)
	}

	a := &EntitySyncAdapter[T]{
		entity:      entity,
		local:       deps.Local,
		remote:      deps.Remote,
		checkpoints: deps.Checkpoints,
		tracker:     deps.Tracker,
		resolver:    resolver,
		validator:   deps.Validator,
		clock:       clk,
		opts:        opts,
		logger:      log,
	}

	if feed, ok := deps.Remote.(store.ChangeFeed[T]); ok && opts.Download && deps.Checkpoints != nil {
		a.feed = feed
	}

	return a, nil
}

// Entity implements [EntitySyncer].
func (a *EntitySyncAdapter[T]) Entity() models.EntityType {
	return a.entity
}

// Sync implements [EntitySyncer]: it pulls remote changes when downloading
// is enabled, then pushes local changes. Local winners of a conflict are
// pushed in the same call.
func (a *EntitySyncAdapter[T]) Sync(ctx context.Context) (models.EntitySyncResult, error) {
	result := models.EntitySyncResult{Entity: a.entity}

	down, err := a.SyncDown(ctx)
	result.Merge(down)
	if err != nil {
		return result, err
	}

	up, err := a.SyncUp(ctx)
	result.Merge(up)
	if err != nil {
		return result, err
	}

	return result, nil
}

// SyncUp pushes every dirty local record to the remote store.
//
// A record that fails validation or whose push is rejected is reported in
// the result and stays dirty for the next cycle. An unreachable remote
// store or a cancelled ctx stops the loop and is returned as an error.
func (a *EntitySyncAdapter[T]) SyncUp(ctx context.Context) (models.EntitySyncResult, error) {
	result := models.EntitySyncResult{Entity: a.entity}

	dirty, err := a.tracker.Dirty(ctx)
	if err != nil {
		return result, fmt.Errorf("collect dirty %s records: %w", a.entity, err)
	}
	if len(dirty) == 0 {
		a.logger.Debug().Msg("nothing to push")
		return result, nil
	}

	a.logger.Debug().Int("dirty", len(dirty)).Msg("pushing dirty records")

	for _, rec := range dirty {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		id := rec.GetID()

		// re-read: the record may have been edited or deleted since the query
		current, err := a.local.Get(ctx, id)
		if errors.Is(err, store.ErrRecordNotFound) {
			a.logger.Debug().Str(logger.FieldRecordID, id).Msg("record deleted before push, skipping")
			continue
		}
		if err != nil {
			a.fail(&result, id, fmt.Errorf("reload local record: %w", err))
			continue
		}
		if !a.tracker.NeedsSync(current) {
			continue
		}

		if a.validator != nil {
			if err = a.validator.Validate(ctx, current); err != nil {
				a.fail(&result, id, fmt.Errorf("%w: %w", ErrValidation, err))
				continue
			}
		}

		if err = a.push(ctx, current); err != nil {
			if a.mustAbort(ctx, err) {
				a.logger.Error().Err(err).Str(logger.FieldRecordID, id).Msg("push aborted")
				return result, fmt.Errorf("push %s %s: %w", a.entity, id, err)
			}
			a.fail(&result, id, err)
			continue
		}

		if err = a.tracker.MarkSynced(ctx, id, a.syncedAt(current)); err != nil {
			// pushed but still dirty locally; the next push is idempotent
			a.fail(&result, id, err)
			continue
		}

		result.Uploaded++
	}

	a.logger.Info().
		Int("uploaded", result.Uploaded).
		Int("failed", result.Failed).
		Msg("push finished")

	return result, nil
}

// SyncDown pulls remote changes recorded after the stored checkpoint and
// applies them locally. It is a no-op when downloading is disabled or the
// remote store has no change feed.
//
// The checkpoint only advances when every pulled record was applied, so a
// failed record is pulled again on the next cycle.
func (a *EntitySyncAdapter[T]) SyncDown(ctx context.Context) (models.EntitySyncResult, error) {
	result := models.EntitySyncResult{Entity: a.entity}
	if a.feed == nil {
		return result, nil
	}

	since, err := a.checkpoints.GetCheckpoint(ctx, a.entity)
	if err != nil {
		return result, fmt.Errorf("load %s checkpoint: %w", a.entity, err)
	}

	changes, cursor, err := a.feed.ChangedSince(ctx, since)
	if err != nil {
		a.logger.Error().Err(err).Time("since", since).Msg("pull failed")
		return result, fmt.Errorf("pull %s changes: %w", a.entity, err)
	}

	for _, remote := range changes {
		if err = ctx.Err(); err != nil {
			return result, err
		}
		if err = a.apply(ctx, remote, &result); err != nil {
			a.fail(&result, remote.GetID(), err)
		}
	}

	if result.Failed == 0 && cursor.After(since) {
		if err = a.checkpoints.SetCheckpoint(ctx, a.entity, cursor); err != nil {
			return result, fmt.Errorf("store %s checkpoint: %w", a.entity, err)
		}
	}

	a.logger.Info().
		Int("downloaded", result.Downloaded).
		Int("conflicts", result.ConflictsResolved).
		Int("failed", result.Failed).
		Msg("pull finished")

	return result, nil
}

// apply merges one pulled record into the local store.
func (a *EntitySyncAdapter[T]) apply(ctx context.Context, remote T, result *models.EntitySyncResult) error {
	id := remote.GetID()

	local, err := a.local.Get(ctx, id)
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		return a.saveRemote(ctx, remote, result)
	case err != nil:
		return fmt.Errorf("load local record: %w", err)
	}

	if sameTime(local.GetUpdatedAt(), remote.GetUpdatedAt()) {
		// usually the echo of our own push
		return nil
	}

	if !a.tracker.Modified(local) {
		return a.saveRemote(ctx, remote, result)
	}

	_, side := a.resolver.Resolve(local, remote)
	result.ConflictsResolved++
	if side == SideLocal {
		// stays dirty and is pushed by SyncUp
		return nil
	}

	return a.saveRemote(ctx, remote, result)
}

func (a *EntitySyncAdapter[T]) saveRemote(ctx context.Context, remote T, result *models.EntitySyncResult) error {
	syncedAt := a.syncedAt(remote)
	remote.SetLastSyncedAt(&syncedAt)

	if err := a.local.Save(ctx, remote); err != nil {
		return fmt.Errorf("save pulled record: %w", err)
	}

	result.Downloaded++
	return nil
}

func (a *EntitySyncAdapter[T]) push(ctx context.Context, rec T) error {
	if a.opts.PushTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.PushTimeout)
		defer cancel()
	}
	return a.remote.Upsert(ctx, rec)
}

// mustAbort reports whether err ends the whole entity sync rather than a
// single record.
func (a *EntitySyncAdapter[T]) mustAbort(ctx context.Context, err error) bool {
	return errors.Is(err, store.ErrRemoteUnavailable) || ctx.Err() != nil
}

// syncedAt never stamps a record as synced before its own UpdatedAt, so a
// device clock running behind does not leave it dirty forever.
func (a *EntitySyncAdapter[T]) syncedAt(rec T) time.Time {
	now := a.clock.Now()
	if updated := rec.GetUpdatedAt(); updated != nil && updated.After(now) {
		return *updated
	}
	return now
}

func (a *EntitySyncAdapter[T]) fail(result *models.EntitySyncResult, id string, err error) {
	a.logger.Warn().Err(err).Str(logger.FieldRecordID, id).Msg("record sync failed")

	result.Failed++
	result.Failures = append(result.Failures, models.RecordFailure{ID: id, Error: err.Error()})
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
