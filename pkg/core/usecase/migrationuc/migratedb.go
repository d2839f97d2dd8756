// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/car-api/pkg/core/log"
)

// MigrateDBUseCase represents the schema migration use case.
type MigrateDBUseCase struct {
	settings SchemaSettings
}

// NewMigrateDB creates a MigrateDBUseCase instance which connects to
// the database which is described by the `ss` schema settings.
func NewMigrateDB(ss SchemaSettings) *MigrateDBUseCase {
	return &MigrateDBUseCase{settings: ss}
}

// Migrate applies all pending schema migrations using the normal role
// and returns the resulting schema version. Applying migrations on an
// up to date schema is a no-op.
func (mduc *MigrateDBUseCase) Migrate(ctx context.Context) (v int64, err error) {
	m, err := mduc.settings.SchemaMigrator(ctx)
	if err != nil {
		return 0, fmt.Errorf("creating schema migrator: %w", err)
	}
	defer func() {
		if err2 := m.Close(); err2 != nil && err == nil {
			err = fmt.Errorf("closing schema migrator: %w", err2)
		}
	}()
	from, err := m.Version(ctx)
	if err != nil {
		return 0, fmt.Errorf("finding schema version: %w", err)
	}
	v, err = m.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("applying migrations: %w", err)
	}
	log.Info(
		ctx, "schema is migrated",
		slog.Int64("from", from), slog.Int64("to", v),
	)
	return v, nil
}
