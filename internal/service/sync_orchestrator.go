// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/wealthwise-sync/internal/clock"
	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/internal/store"
	"github.com/MKhiriev/wealthwise-sync/models"
)

// SyncOrchestratorOptions tunes a [SyncOrchestrator].
type SyncOrchestratorOptions struct {
	// MaxParallel is the number of syncers run at once. Values below 2 run
	// them one after another in the order given.
	MaxParallel int

	// History, if set, receives every successful result and is the source
	// of RestoreLastSync.
	History store.SyncHistoryRepository

	Clock  clock.Clock
	Logger *logger.Logger
}

type syncOrchestrator struct {
	syncers []EntitySyncer
	history store.SyncHistoryRepository
	clock   clock.Clock
	limit   int

	mu         sync.Mutex
	state      models.SyncState
	lastResult *models.SyncResult
	subs       map[int]chan models.SyncState
	nextSub    int

	logger *logger.Logger
}

// NewSyncOrchestrator creates an idle orchestrator over syncers. The set of
// syncers is fixed for its lifetime.
func NewSyncOrchestrator(syncers []EntitySyncer, opts SyncOrchestratorOptions) SyncOrchestrator {
	clk := opts.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &syncOrchestrator{
		syncers: append([]EntitySyncer(nil), syncers...),
		history: opts.History,
		clock:   clk,
		limit:   opts.MaxParallel,
		state:   models.SyncState{Status: models.SyncIdle, Since: clk.Now()},
		subs:    make(map[int]chan models.SyncState),
		logger:  log,
	}
}

// PerformFullSync implements [SyncOrchestrator].
func (o *syncOrchestrator) PerformFullSync(ctx context.Context) (models.SyncResult, error) {
	o.mu.Lock()
	if o.state.Status == models.SyncSyncing {
		o.mu.Unlock()
		return models.SyncResult{}, ErrSyncInProgress
	}
	o.setStateLocked(models.SyncSyncing, "")
	o.mu.Unlock()

	o.logger.Info().Int("entities", len(o.syncers)).Msg("full sync started")

	results, err := o.runSyncers(ctx)
	if err != nil {
		o.logger.Error().Err(err).Msg("full sync failed")

		o.mu.Lock()
		o.setStateLocked(models.SyncError, err.Error())
		o.mu.Unlock()
		return models.SyncResult{}, err
	}

	result := models.SyncResult{
		Timestamp: o.clock.Now(),
		Entities:  results,
	}
	for _, r := range results {
		result.Uploaded += r.Uploaded
		result.Downloaded += r.Downloaded
		result.ConflictsResolved += r.ConflictsResolved
		result.Failed += r.Failed
	}

	if o.history != nil {
		if err = o.history.SaveResult(ctx, result); err != nil {
			// the sync itself succeeded
			o.logger.Warn().Err(err).Msg("failed to save sync history")
		}
	}

	o.mu.Lock()
	o.lastResult = &result
	o.setStateLocked(models.SyncSuccess, "")
	o.mu.Unlock()

	o.logger.Info().
		Int("uploaded", result.Uploaded).
		Int("downloaded", result.Downloaded).
		Int("conflicts", result.ConflictsResolved).
		Int("failed", result.Failed).
		Msg("full sync finished")

	return result, nil
}

func (o *syncOrchestrator) runSyncers(ctx context.Context) ([]models.EntitySyncResult, error) {
	results := make([]models.EntitySyncResult, len(o.syncers))

	if o.limit < 2 {
		for i, s := range o.syncers {
			r, err := s.Sync(ctx)
			if err != nil {
				return nil, &SyncError{Entity: s.Entity(), Err: err}
			}
			results[i] = withEntity(r, s.Entity())
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.limit)
	for i, s := range o.syncers {
		g.Go(func() error {
			r, err := s.Sync(gctx)
			if err != nil {
				return &SyncError{Entity: s.Entity(), Err: err}
			}
			results[i] = withEntity(r, s.Entity())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func withEntity(r models.EntitySyncResult, entity models.EntityType) models.EntitySyncResult {
	if r.Entity == "" {
		r.Entity = entity
	}
	return r
}

// State implements [SyncOrchestrator].
func (o *syncOrchestrator) State() models.SyncState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastSyncTime implements [SyncOrchestrator].
func (o *syncOrchestrator) LastSyncTime() (time.Time, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.lastResult == nil {
		return time.Time{}, false
	}
	return o.lastResult.Timestamp, true
}

// LastResult implements [SyncOrchestrator].
func (o *syncOrchestrator) LastResult() (models.SyncResult, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.lastResult == nil {
		return models.SyncResult{}, false
	}
	return *o.lastResult, true
}

// Subscribe implements [SyncOrchestrator].
func (o *syncOrchestrator) Subscribe() (<-chan models.SyncState, func()) {
	ch := make(chan models.SyncState, 1)

	o.mu.Lock()
	id := o.nextSub
	o.nextSub++
	o.subs[id] = ch
	ch <- o.state
	o.mu.Unlock()

	cancel := sync.OnceFunc(func() {
		o.mu.Lock()
		delete(o.subs, id)
		close(ch)
		o.mu.Unlock()
	})

	return ch, cancel
}

// RestoreLastSync implements [SyncOrchestrator].
func (o *syncOrchestrator) RestoreLastSync(ctx context.Context) error {
	if o.history == nil {
		return nil
	}

	result, found, err := o.history.LastResult(ctx)
	if err != nil {
		return fmt.Errorf("restore last sync: %w", err)
	}
	if !found {
		return nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.lastResult == nil {
		o.lastResult = &result
	}
	return nil
}

// setStateLocked must be called with o.mu held. Subscribers always end up
// holding the latest state, older undelivered states are dropped.
func (o *syncOrchestrator) setStateLocked(status models.SyncStatus, message string) {
	o.state = models.SyncState{Status: status, Message: message, Since: o.clock.Now()}

	for _, ch := range o.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- o.state:
		default:
		}
	}
}
