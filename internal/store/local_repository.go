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

// localRepository is the SQLite-backed implementation of [LocalRepository].
// The record body lives in the data column as JSON; updated_at and
// last_synced_at are duplicated as unix-nano integers so the dirty check
// can run in SQL.
type localRepository[T models.Syncable] struct {
	*DB
	entity    models.EntityType
	table     string
	newRecord func() T
	logger    *logger.Logger
}

// NewLocalRepository constructs a [LocalRepository] for entity. newRecord
// must return a fresh, non-nil record to decode rows into.
func NewLocalRepository[T models.Syncable](db *DB, entity models.EntityType, newRecord func() T, logger *logger.Logger) (LocalRepository[T], error) {
	table, err := TableName(entity)
	if err != nil {
		return nil, err
	}

	return &localRepository[T]{
		DB:        db,
		entity:    entity,
		table:     table,
		newRecord: newRecord,
		logger:    logger,
	}, nil
}

// QueryDirty implements [LocalRepository].
func (l *localRepository[T]) QueryDirty(ctx context.Context, rule models.DirtyRule) ([]T, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildQueryDirty(l.builder, l.table, rule)
	if err != nil {
		log.Err(err).
			Str("func", "localRepository.QueryDirty").
			Str("entity", l.entity.String()).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "localRepository.QueryDirty").
			Str("entity", l.entity.String()).
			Str("mode", string(rule.Mode)).
			Msg("failed to execute query for dirty records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]T, 0, 16)
	for rows.Next() {
		var row localRow
		if scanErr := rows.Scan(&row.id, &row.updatedAt, &row.lastSyncedAt, &row.data); scanErr != nil {
			log.Err(scanErr).
				Str("func", "localRepository.QueryDirty").
				Str("entity", l.entity.String()).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		record, decodeErr := l.decode(row)
		if decodeErr != nil {
			log.Err(decodeErr).
				Str("func", "localRepository.QueryDirty").
				Str("entity", l.entity.String()).
				Str("record_id", row.id).
				Msg("failed to decode record")
			return nil, decodeErr
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "localRepository.QueryDirty").
			Str("entity", l.entity.String()).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

// Get implements [LocalRepository].
func (l *localRepository[T]) Get(ctx context.Context, id string) (T, error) {
	log := logger.FromContext(ctx)
	var zero T

	query, args, err := buildGetRecord(l.builder, l.table, id)
	if err != nil {
		return zero, err
	}

	var row localRow
	err = l.DB.QueryRowContext(ctx, query, args...).
		Scan(&row.id, &row.updatedAt, &row.lastSyncedAt, &row.data)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, fmt.Errorf("%w: %s %s", ErrRecordNotFound, l.entity, id)
	}
	if err != nil {
		log.Err(err).
			Str("func", "localRepository.Get").
			Str("entity", l.entity.String()).
			Str("record_id", id).
			Msg("failed to scan record row")
		return zero, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return l.decode(row)
}

// Save implements [LocalRepository]. All records are written in one
// transaction.
func (l *localRepository[T]) Save(ctx context.Context, records ...T) error {
	if len(records) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "localRepository.Save").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, record := range records {
		row, encodeErr := encodeLocal(record)
		if encodeErr != nil {
			return encodeErr
		}

		query, args, buildErr := buildSaveRecord(l.builder, l.table, row)
		if buildErr != nil {
			return buildErr
		}

		if _, execErr := tx.ExecContext(ctx, query, args...); execErr != nil {
			log.Err(execErr).
				Str("func", "localRepository.Save").
				Str("entity", l.entity.String()).
				Str("record_id", row.id).
				Msg("failed to execute upsert for record")
			return fmt.Errorf("%w (id=%s): %w", ErrExecutingStatement, row.id, execErr)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "localRepository.Save").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

// Delete implements [LocalRepository].
func (l *localRepository[T]) Delete(ctx context.Context, id string) error {
	query, args, err := buildDeleteRecord(l.builder, l.table, id)
	if err != nil {
		return err
	}

	if _, err = l.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localRepository.Delete").
			Str("entity", l.entity.String()).
			Str("record_id", id).
			Msg("failed to delete record")
		return fmt.Errorf("%w (id=%s): %w", ErrExecutingStatement, id, err)
	}
	return nil
}

// MarkSynced implements [LocalRepository].
func (l *localRepository[T]) MarkSynced(ctx context.Context, id string, at time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := buildMarkSynced(l.builder, l.table, id, at)
	if err != nil {
		return err
	}

	result, err := l.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "localRepository.MarkSynced").
			Str("entity", l.entity.String()).
			Str("record_id", id).
			Msg("failed to mark record synced")
		return fmt.Errorf("%w (id=%s): %w", ErrExecutingStatement, id, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		log.Debug().
			Str("func", "localRepository.MarkSynced").
			Str("entity", l.entity.String()).
			Str("record_id", id).
			Msg("record vanished before it could be marked synced")
	}
	return nil
}

func (l *localRepository[T]) decode(row localRow) (T, error) {
	record := l.newRecord()
	if err := json.Unmarshal([]byte(row.data), record); err != nil {
		var zero T
		return zero, fmt.Errorf("%w (id=%s): %w", ErrDecodingRecord, row.id, err)
	}
	record.SetLastSyncedAt(fromNullNanos(row.lastSyncedAt))
	return record, nil
}

func encodeLocal(record models.Syncable) (localRow, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return localRow{}, fmt.Errorf("%w (id=%s): %w", ErrEncodingRecord, record.GetID(), err)
	}
	return localRow{
		id:           record.GetID(),
		updatedAt:    toNullNanos(record.GetUpdatedAt()),
		lastSyncedAt: toNullNanos(record.GetLastSyncedAt()),
		data:         string(data),
	}, nil
}
