// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/models"
)

type historyRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncHistoryRepository constructs the SQLite-backed [SyncHistoryRepository].
func NewSyncHistoryRepository(db *DB, logger *logger.Logger) SyncHistoryRepository {
	return &historyRepository{DB: db, logger: logger}
}

// SaveResult implements [SyncHistoryRepository].
func (h *historyRepository) SaveResult(ctx context.Context, result models.SyncResult) error {
	perEntity := result.Entities
	if perEntity == nil {
		perEntity = []models.EntitySyncResult{}
	}
	entities, err := json.Marshal(perEntity)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}

	query, args, err := h.builder.Insert(tableHistory).
		Columns("finished_at", "uploaded", "downloaded", "conflicts_resolved", "failed", "entities").
		Values(result.Timestamp.UnixNano(), result.Uploaded, result.Downloaded, result.ConflictsResolved, result.Failed, string(entities)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = h.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "historyRepository.SaveResult").
			Msg("failed to store sync result")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// LastResult implements [SyncHistoryRepository].
func (h *historyRepository) LastResult(ctx context.Context) (models.SyncResult, bool, error) {
	query, args, err := h.builder.Select("finished_at", "uploaded", "downloaded", "conflicts_resolved", "failed", "entities").
		From(tableHistory).
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return models.SyncResult{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		result     models.SyncResult
		finishedAt int64
		entities   string
	)
	err = h.DB.QueryRowContext(ctx, query, args...).Scan(
		&finishedAt,
		&result.Uploaded,
		&result.Downloaded,
		&result.ConflictsResolved,
		&result.Failed,
		&entities,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncResult{}, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "historyRepository.LastResult").
			Msg("failed to read last sync result")
		return models.SyncResult{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal([]byte(entities), &result.Entities); err != nil {
		return models.SyncResult{}, false, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}
	result.Timestamp = time.Unix(0, finishedAt).UTC()

	return result, true, nil
}
