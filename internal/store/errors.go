// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when a lookup targets an id that does
	// not exist in the local store.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrRemoteUnavailable is returned (wrapped) when the remote store
	// cannot be reached at all: connection refused, timed out, or the
	// server reported it is down. It aborts the current entity sync,
	// unlike a per-record failure.
	ErrRemoteUnavailable = errors.New("remote store is unavailable")

	// ErrUnknownEntity is returned when an entity type has no table.
	ErrUnknownEntity = errors.New("unknown entity type")

	// ErrUnknownDirtyMode is returned when a [models.DirtyRule] carries a
	// mode the repository cannot translate to SQL.
	ErrUnknownDirtyMode = errors.New("unknown dirty mode")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingRecord is returned when a record cannot be marshalled to
	// its JSON document.
	ErrEncodingRecord = errors.New("failed to encode record")

	// ErrDecodingRecord is returned when a stored JSON document cannot be
	// unmarshalled into the record type.
	ErrDecodingRecord = errors.New("failed to decode record")
)
