// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: NonRetryable},
		{name: "connection exception", err: &pgconn.PgError{Code: pgerrcode.ConnectionException}, want: Retryable},
		{name: "connection failure", err: &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, want: Retryable},
		{name: "serialization failure", err: &pgconn.PgError{Code: pgerrcode.SerializationFailure}, want: Retryable},
		{name: "deadlock", err: &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, want: Retryable},
		{name: "cannot connect now", err: &pgconn.PgError{Code: pgerrcode.CannotConnectNow}, want: Retryable},
		{name: "wrapped pg error", err: fmt.Errorf("upsert: %w", &pgconn.PgError{Code: pgerrcode.SerializationFailure}), want: Retryable},
		{name: "unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, want: NonRetryable},
		{name: "invalid json", err: &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, want: NonRetryable},
		{name: "bad conn", err: driver.ErrBadConn, want: Retryable},
		{name: "deadline", err: context.DeadlineExceeded, want: Retryable},
		{name: "net error", err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}, want: Retryable},
		{name: "plain error", err: errors.New("boom"), want: NonRetryable},
		{name: "cancelled", err: context.Canceled, want: NonRetryable},
	}

	c := NewPostgresErrorClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "connection class", err: &pgconn.PgError{Code: pgerrcode.ConnectionDoesNotExist}, want: true},
		{name: "admin shutdown", err: &pgconn.PgError{Code: pgerrcode.AdminShutdown}, want: true},
		{name: "cannot connect now", err: &pgconn.PgError{Code: pgerrcode.CannotConnectNow}, want: true},
		{name: "deadlock is a statement failure", err: &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, want: false},
		{name: "dial error", err: &net.OpError{Op: "dial", Err: errors.New("refused")}, want: true},
		{name: "bad conn", err: driver.ErrBadConn, want: true},
		{name: "plain", err: errors.New("syntax"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnavailable(tt.err))
		})
	}
}

func TestSQLiteErrorClassifier(t *testing.T) {
	assert.Equal(t, NonRetryable, sqliteErrorClassifier{}.Classify(driver.ErrBadConn))
}
