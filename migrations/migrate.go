// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the goose schema migrations of both stores:
// sqlite/ for the device-local database and postgres/ for the shared remote
// store.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

// Dialect selects the migration set and the goose dialect.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

var errNilDB = errors.New("db is nil")

func (d Dialect) dir() (string, error) {
	switch d {
	case DialectSQLite:
		return "sqlite", nil
	case DialectPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("unknown migration dialect %q", d)
	}
}

// Migrate applies every pending migration of dialect to db.
func Migrate(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", errNilDB)
	}

	dir, err := dialect.dir()
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err = goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err = goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
