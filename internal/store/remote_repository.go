// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/models"
)

// RetryPolicy bounds how often a retryable database error is retried.
type RetryPolicy struct {
	MaxRetries uint64
	BaseDelay  time.Duration
}

// DefaultRetryPolicy retries three times starting at 50ms.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, BaseDelay: 50 * time.Millisecond}

func (p RetryPolicy) backoff() retry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = DefaultRetryPolicy.BaseDelay
	}
	return retry.WithMaxRetries(p.MaxRetries, retry.NewExponential(base))
}

// remoteRepository is the PostgreSQL implementation of [RemoteRepository]
// and [ChangeFeed]. changed_at is stamped by the database on every write
// and drives the change feed, so device clocks never influence the cursor.
type remoteRepository[T models.Syncable] struct {
	*DB
	entity    models.EntityType
	table     string
	newRecord func() T
	retry     RetryPolicy
	pageSize  uint64
	logger    *logger.Logger
}

// RemoteRepositoryWithFeed is what the PostgreSQL remote store provides.
type RemoteRepositoryWithFeed[T models.Syncable] interface {
	RemoteRepository[T]
	ChangeFeed[T]
}

// NewRemoteRepository constructs the PostgreSQL remote repository for
// entity. pageSize caps one ChangedSince call; zero means unlimited.
func NewRemoteRepository[T models.Syncable](db *DB, entity models.EntityType, newRecord func() T, policy RetryPolicy, pageSize uint64, logger *logger.Logger) (RemoteRepositoryWithFeed[T], error) {
	table, err := TableName(entity)
	if err != nil {
		return nil, err
	}

	return &remoteRepository[T]{
		DB:        db,
		entity:    entity,
		table:     table,
		newRecord: newRecord,
		retry:     policy,
		pageSize:  pageSize,
		logger:    logger,
	}, nil
}

// Upsert implements [RemoteRepository].
func (r *remoteRepository[T]) Upsert(ctx context.Context, record T) error {
	log := logger.FromContext(ctx)

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w (id=%s): %w", ErrEncodingRecord, record.GetID(), err)
	}

	query, args, err := buildRemoteUpsert(r.builder, r.table, record.GetID(), record.GetUpdatedAt(), data)
	if err != nil {
		return err
	}

	err = retry.Do(ctx, r.retry.backoff(), func(ctx context.Context) error {
		_, execErr := r.DB.ExecContext(ctx, query, args...)
		if execErr != nil && r.errorClassificator.Classify(execErr) == Retryable {
			log.Warn().Err(execErr).
				Str("func", "remoteRepository.Upsert").
				Str("entity", r.entity.String()).
				Str("record_id", record.GetID()).
				Msg("retrying upsert")
			return retry.RetryableError(execErr)
		}
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "remoteRepository.Upsert").
			Str("entity", r.entity.String()).
			Str("record_id", record.GetID()).
			Msg("failed to upsert record")
		return r.wrap(err, record.GetID())
	}

	return nil
}

// ChangedSince implements [ChangeFeed].
//
// A full page never ends in the middle of a group of rows sharing one
// changed_at: the trailing group is left for the next call, so the returned
// cursor cannot skip its unread rows. When the whole page is one group, the
// group is read in full instead.
func (r *remoteRepository[T]) ChangedSince(ctx context.Context, since time.Time) ([]T, time.Time, error) {
	query, args, err := buildRemoteChangedSince(r.builder, r.table, since, r.pageSize)
	if err != nil {
		return nil, since, err
	}

	page, err := r.queryChanges(ctx, query, args, since)
	if err != nil {
		return nil, since, err
	}

	if r.pageSize > 0 && uint64(len(page)) == r.pageSize {
		last := page[len(page)-1].changedAt
		cut := len(page)
		for cut > 0 && page[cut-1].changedAt.Equal(last) {
			cut--
		}

		if cut > 0 {
			page = page[:cut]
		} else {
			query, args, err = buildRemoteChangedAt(r.builder, r.table, last)
			if err != nil {
				return nil, since, err
			}
			if page, err = r.queryChanges(ctx, query, args, since); err != nil {
				return nil, since, err
			}
		}
	}

	cursor := since
	records := make([]T, 0, len(page))
	for _, c := range page {
		records = append(records, c.record)
		if c.changedAt.After(cursor) {
			cursor = c.changedAt
		}
	}

	return records, cursor, nil
}

// change is one row of the change feed.
type change[T models.Syncable] struct {
	record    T
	changedAt time.Time
}

func (r *remoteRepository[T]) queryChanges(ctx context.Context, query string, args []any, since time.Time) ([]change[T], error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "remoteRepository.ChangedSince").
			Str("entity", r.entity.String()).
			Time("since", since).
			Msg("failed to query changed records")
		return nil, r.wrap(err, "")
	}
	defer rows.Close()

	changes := make([]change[T], 0, 16)
	for rows.Next() {
		var (
			data      []byte
			changedAt time.Time
		)
		if scanErr := rows.Scan(&data, &changedAt); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		record := r.newRecord()
		if decodeErr := json.Unmarshal(data, record); decodeErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodingRecord, decodeErr)
		}
		changes = append(changes, change[T]{record: record, changedAt: changedAt})
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return changes, nil
}

func (r *remoteRepository[T]) wrap(err error, id string) error {
	if isUnavailable(err) {
		return fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}
	if id == "" {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return fmt.Errorf("%w (id=%s): %w", ErrExecutingStatement, id, err)
}
