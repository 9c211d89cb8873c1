// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/migrations"
)

// DB wraps a *sql.DB together with the dialect-specific pieces every
// repository needs: a squirrel statement builder with the right
// placeholder format and an error classifier.
type DB struct {
	*sql.DB
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	dialect            migrations.Dialect
	logger             *logger.Logger
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// Migrate applies the embedded goose migrations for the database dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
