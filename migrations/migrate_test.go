// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_ = mock // goose talks to the db itself, every call is unexpected

	err = Migrate(db, DialectSQLite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db, DialectPostgres)
	require.Error(t, err)
	assert.ErrorIs(t, err, errNilDB)
}

func TestMigrate_UnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(db, Dialect("mysql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration dialect")
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, d := range []Dialect{DialectSQLite, DialectPostgres} {
		dir, err := d.dir()
		require.NoError(t, err)

		files, err := fs.Glob(embedMigrations, dir+"/*.sql")
		require.NoError(t, err)
		assert.NotEmpty(t, files, "dialect %s", d)
	}
}
