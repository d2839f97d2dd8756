// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migration embeds the SQL schema migrations and applies them
// using the github.com/pressly/goose/v3 module. Migrations are numbered
// sequentially and each one has its Up and Down sections.
//
// Migrations must be applied by the normal role, whose search_path
// is set to the application schema, so tables (and the goose version
// table) are created in that schema and are owned by the normal role.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var migrations embed.FS

// gooseMu serializes goose calls, since goose keeps its base FS and
// dialect in package level variables.
var gooseMu sync.Mutex

// Migrator implements the repo.SchemaMigrator interface.
type Migrator struct {
	db     *sql.DB
	closer func() error
}

// New creates a Migrator for the db database. The closer function
// (if not nil) is called by the Close method in order to release db.
func New(db *sql.DB, closer func() error) *Migrator {
	return &Migrator{db: db, closer: closer}
}

func setup() error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	return nil
}

// Up applies all pending migrations and returns the resulting version.
func (m *Migrator) Up(ctx context.Context) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()
	if err := setup(); err != nil {
		return 0, err
	}
	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}
	return goose.GetDBVersionContext(ctx, m.db)
}

// Version returns the current schema version. A schema without any
// applied migration has the zero version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()
	if err := setup(); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, m.db)
}

// Close releases the database of m.
func (m *Migrator) Close() error {
	if m.closer == nil {
		return nil
	}
	return m.closer()
}
