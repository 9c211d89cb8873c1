// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/models"
)

type checkpointRepository struct {
	*DB
	logger *logger.Logger
}

// NewCheckpointRepository constructs the SQLite-backed [CheckpointRepository].
func NewCheckpointRepository(db *DB, logger *logger.Logger) CheckpointRepository {
	return &checkpointRepository{DB: db, logger: logger}
}

// GetCheckpoint implements [CheckpointRepository].
func (c *checkpointRepository) GetCheckpoint(ctx context.Context, entity models.EntityType) (time.Time, error) {
	query, args, err := c.builder.Select("cursor").
		From(tableCheckpoints).
		Where(sq.Eq{"entity": string(entity)}).
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var cursor int64
	err = c.DB.QueryRowContext(ctx, query, args...).Scan(&cursor)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "checkpointRepository.GetCheckpoint").
			Str("entity", entity.String()).
			Msg("failed to read checkpoint")
		return time.Time{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return time.Unix(0, cursor).UTC(), nil
}

// SetCheckpoint implements [CheckpointRepository].
func (c *checkpointRepository) SetCheckpoint(ctx context.Context, entity models.EntityType, cursor time.Time) error {
	query, args, err := c.builder.Insert(tableCheckpoints).
		Columns("entity", "cursor").
		Values(string(entity), cursor.UnixNano()).
		Suffix("ON CONFLICT (entity) DO UPDATE SET cursor = excluded.cursor").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "checkpointRepository.SetCheckpoint").
			Str("entity", entity.String()).
			Msg("failed to store checkpoint")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
