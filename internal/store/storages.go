// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/wealthwise-sync/internal/config"
	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/models"
)

// RemoteStorages groups the PostgreSQL repositories of the shared remote
// store. It is used by the sync server, and directly by clients configured
// with REMOTE_MODE=postgres.
type RemoteStorages struct {
	DB *DB

	Accounts     RemoteRepositoryWithFeed[*models.Account]
	Transactions RemoteRepositoryWithFeed[*models.Transaction]
	Budgets      RemoteRepositoryWithFeed[*models.Budget]
	Goals        RemoteRepositoryWithFeed[*models.Goal]
}

// NewRemoteStorages connects to PostgreSQL, migrates the schema and wires
// one repository per entity type.
func NewRemoteStorages(ctx context.Context, cfg config.RemoteDB, logger *logger.Logger) (*RemoteStorages, error) {
	logger.Info().Msg("creating remote storages...")

	db, err := NewConnectPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newRemoteStorages(db, cfg, logger)
}

func newRemoteStorages(db *DB, cfg config.RemoteDB, logger *logger.Logger) (*RemoteStorages, error) {
	policy := RetryPolicy{MaxRetries: cfg.MaxRetries, BaseDelay: cfg.RetryBaseDelay}
	pageSize := cfg.PageSize

	accounts, err := NewRemoteRepository(db, models.EntityAccount, func() *models.Account { return new(models.Account) }, policy, pageSize, logger)
	if err != nil {
		return nil, err
	}
	transactions, err := NewRemoteRepository(db, models.EntityTransaction, func() *models.Transaction { return new(models.Transaction) }, policy, pageSize, logger)
	if err != nil {
		return nil, err
	}
	budgets, err := NewRemoteRepository(db, models.EntityBudget, func() *models.Budget { return new(models.Budget) }, policy, pageSize, logger)
	if err != nil {
		return nil, err
	}
	goals, err := NewRemoteRepository(db, models.EntityGoal, func() *models.Goal { return new(models.Goal) }, policy, pageSize, logger)
	if err != nil {
		return nil, err
	}

	return &RemoteStorages{
		DB:           db,
		Accounts:     accounts,
		Transactions: transactions,
		Budgets:      budgets,
		Goals:        goals,
	}, nil
}

// Remotes exposes the repositories for a client in postgres mode.
func (s *RemoteStorages) Remotes() Remotes {
	return Remotes{
		Accounts:     s.Accounts,
		Transactions: s.Transactions,
		Budgets:      s.Budgets,
		Goals:        s.Goals,
	}
}

// Close releases the database connection.
func (s *RemoteStorages) Close() error {
	return s.DB.Close()
}
