// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/wealthwise-sync/internal/clock"
	"github.com/MKhiriev/wealthwise-sync/internal/config"
	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/internal/store"
	"github.com/MKhiriev/wealthwise-sync/internal/validators"
	"github.com/MKhiriev/wealthwise-sync/models"
)

// ClientServices is the sync engine of the daemon.
type ClientServices struct {
	Orchestrator SyncOrchestrator
	SyncJob      SyncJob
	Syncers      []EntitySyncer
}

// NewClientServices builds one adapter per entity type, in the fixed order
// of [models.AllEntityTypes], and the orchestrator and job on top of them.
// The last successful sync is restored from storages.History.
func NewClientServices(ctx context.Context, storages *store.ClientStorages, remotes store.Remotes, cfg config.ClientConfig, clk clock.Clock, log *logger.Logger) (*ClientServices, error) {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if log == nil {
		log = logger.Nop()
	}

	policy, err := NewDirtyPolicy(cfg.Sync.DirtyPolicy, cfg.Sync.StaleThreshold)
	if err != nil {
		return nil, err
	}

	b := adapterBuilder{
		checkpoints: storages.Checkpoints,
		policy:      policy,
		validator:   validators.NewRecordValidator(),
		clock:       clk,
		logger:      log,
		opts: AdapterOptions{
			Download:    cfg.Sync.Download,
			PushTimeout: cfg.Remote.RequestTimeout,
		},
	}

	accounts, err := buildAdapter(b, models.EntityAccount, storages.Accounts, remotes.Accounts)
	if err != nil {
		return nil, err
	}
	transactions, err := buildAdapter(b, models.EntityTransaction, storages.Transactions, remotes.Transactions)
	if err != nil {
		return nil, err
	}
	budgets, err := buildAdapter(b, models.EntityBudget, storages.Budgets, remotes.Budgets)
	if err != nil {
		return nil, err
	}
	goals, err := buildAdapter(b, models.EntityGoal, storages.Goals, remotes.Goals)
	if err != nil {
		return nil, err
	}

	syncers := []EntitySyncer{accounts, transactions, budgets, goals}
	orchestrator := NewSyncOrchestrator(syncers, SyncOrchestratorOptions{
		MaxParallel: cfg.Sync.MaxParallel,
		History:     storages.History,
		Clock:       clk,
		Logger:      log,
	})

	if err = orchestrator.RestoreLastSync(ctx); err != nil {
		log.Warn().Err(err).Msg("last sync could not be restored")
	}

	return &ClientServices{
		Orchestrator: orchestrator,
		SyncJob:      NewSyncJob(orchestrator, log),
		Syncers:      syncers,
	}, nil
}

type adapterBuilder struct {
	checkpoints store.CheckpointRepository
	policy      DirtyPolicy
	validator   validators.Validator
	clock       clock.Clock
	logger      *logger.Logger
	opts        AdapterOptions
}

func buildAdapter[T models.Syncable](b adapterBuilder, entity models.EntityType, local store.LocalRepository[T], remote store.RemoteRepository[T]) (*EntitySyncAdapter[T], error) {
	adapter, err := NewEntitySyncAdapter(entity, EntitySyncAdapterDeps[T]{
		Local:       local,
		Remote:      remote,
		Checkpoints: b.checkpoints,
		Tracker:     NewChangeTracker(local, b.policy, b.clock),
		Resolver:    NewConflictResolver[T](b.logger.ForEntity(entity)),
		Validator:   b.validator,
		Clock:       b.clock,
		Logger:      b.logger,
	}, b.opts)
	if err != nil {
		return nil, fmt.Errorf("build %s adapter: %w", entity, err)
	}
	return adapter, nil
}
