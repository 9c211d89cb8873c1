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

// ClientStorages groups the device-local repositories: one per synced
// entity type plus the sync bookkeeping tables.
type ClientStorages struct {
	DB *DB

	Accounts     LocalRepository[*models.Account]
	Transactions LocalRepository[*models.Transaction]
	Budgets      LocalRepository[*models.Budget]
	Goals        LocalRepository[*models.Goal]

	Checkpoints CheckpointRepository
	History     SyncHistoryRepository
}

// NewClientStorages initialises the client storage layer:
//  1. opens the SQLite database at cfg.DB.DSN, creating the file if needed;
//  2. applies pending schema migrations;
//  3. wires every repository to the connection.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newClientStorages(db, logger)
}

func newClientStorages(db *DB, logger *logger.Logger) (*ClientStorages, error) {
	accounts, err := NewLocalRepository(db, models.EntityAccount, func() *models.Account { return new(models.Account) }, logger)
	if err != nil {
		return nil, err
	}
	transactions, err := NewLocalRepository(db, models.EntityTransaction, func() *models.Transaction { return new(models.Transaction) }, logger)
	if err != nil {
		return nil, err
	}
	budgets, err := NewLocalRepository(db, models.EntityBudget, func() *models.Budget { return new(models.Budget) }, logger)
	if err != nil {
		return nil, err
	}
	goals, err := NewLocalRepository(db, models.EntityGoal, func() *models.Goal { return new(models.Goal) }, logger)
	if err != nil {
		return nil, err
	}

	return &ClientStorages{
		DB:           db,
		Accounts:     accounts,
		Transactions: transactions,
		Budgets:      budgets,
		Goals:        goals,
		Checkpoints:  NewCheckpointRepository(db, logger),
		History:      NewSyncHistoryRepository(db, logger),
	}, nil
}

// Close releases the database connection.
func (s *ClientStorages) Close() error {
	return s.DB.Close()
}
