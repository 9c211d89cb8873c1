// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/wealthwise-sync/models"
)

const (
	colID           = "id"
	colUpdatedAt    = "updated_at"
	colLastSyncedAt = "last_synced_at"
	colChangedAt    = "changed_at"
	colData         = "data"

	tableCheckpoints = "sync_checkpoints"
	tableHistory     = "sync_history"
)

var localRecordColumns = []string{colID, colUpdatedAt, colLastSyncedAt, colData}

// TableName returns the table holding records of entity, in both stores.
func TableName(entity models.EntityType) (string, error) {
	if !entity.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	return string(entity) + "s", nil
}

// dirtyCondition translates rule into a WHERE clause over the local table.
func dirtyCondition(rule models.DirtyRule) (sq.Sqlizer, error) {
	neverSynced := sq.Eq{colLastSyncedAt: nil}

	switch rule.Mode {
	case models.DirtyModeModified:
		return sq.Or{neverSynced, sq.Expr(colUpdatedAt + " > " + colLastSyncedAt)}, nil
	case models.DirtyModeStale:
		staleBefore := rule.Now.Add(-rule.Threshold)
		return sq.Or{neverSynced, sq.Lt{colLastSyncedAt: staleBefore.UnixNano()}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDirtyMode, rule.Mode)
	}
}

func buildQueryDirty(b sq.StatementBuilderType, table string, rule models.DirtyRule) (string, []any, error) {
	cond, err := dirtyCondition(rule)
	if err != nil {
		return "", nil, err
	}

	query, args, err := b.Select(localRecordColumns...).
		From(table).
		Where(cond).
		OrderBy(colUpdatedAt, colID).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildGetRecord(b sq.StatementBuilderType, table, id string) (string, []any, error) {
	query, args, err := b.Select(localRecordColumns...).
		From(table).
		Where(sq.Eq{colID: id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSaveRecord(b sq.StatementBuilderType, table string, row localRow) (string, []any, error) {
	query, args, err := b.Insert(table).
		Columns(localRecordColumns...).
		Values(row.id, row.updatedAt, row.lastSyncedAt, row.data).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"updated_at = excluded.updated_at, " +
			"last_synced_at = excluded.last_synced_at, " +
			"data = excluded.data").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteRecord(b sq.StatementBuilderType, table, id string) (string, []any, error) {
	query, args, err := b.Delete(table).Where(sq.Eq{colID: id}).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildMarkSynced(b sq.StatementBuilderType, table, id string, at time.Time) (string, []any, error) {
	query, args, err := b.Update(table).
		Set(colLastSyncedAt, at.UnixNano()).
		Where(sq.Eq{colID: id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildRemoteUpsert(b sq.StatementBuilderType, table, id string, updatedAt *time.Time, data []byte) (string, []any, error) {
	query, args, err := b.Insert(table).
		Columns(colID, colUpdatedAt, colData, colChangedAt).
		Values(id, updatedAt, string(data), sq.Expr("NOW()")).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"updated_at = EXCLUDED.updated_at, " +
			"data = EXCLUDED.data, " +
			"changed_at = NOW()").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildRemoteChangedSince(b sq.StatementBuilderType, table string, since time.Time, limit uint64) (string, []any, error) {
	q := b.Select(colData, colChangedAt).
		From(table).
		Where(sq.Gt{colChangedAt: since}).
		OrderBy(colChangedAt, colID)
	if limit > 0 {
		q = q.Limit(limit)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildRemoteChangedAt selects every row stamped exactly at changedAt. It
// completes a page whose rows all share one changed_at.
func buildRemoteChangedAt(b sq.StatementBuilderType, table string, changedAt time.Time) (string, []any, error) {
	query, args, err := b.Select(colData, colChangedAt).
		From(table).
		Where(sq.Eq{colChangedAt: changedAt}).
		OrderBy(colID).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// localRow is the column-level shape of a local record.
type localRow struct {
	id           string
	updatedAt    sql.NullInt64
	lastSyncedAt sql.NullInt64
	data         string
}

func toNullNanos(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}

func fromNullNanos(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := time.Unix(0, n.Int64).UTC()
	return &t
}
