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
	"github.com/momeni/car-api/pkg/core/repo"
)

// InitDBUseCase represents the database initialization use case.
type InitDBUseCase struct {
	settings   SchemaSettings
	schemaRepo repo.Schema // schema management repo
	migrate    *MigrateDBUseCase
}

// NewInitDB creates an InitDBUseCase which finds the database and its
// schema repository through the ss settings.
func NewInitDB(ss SchemaSettings) *InitDBUseCase {
	return &InitDBUseCase{
		settings:   ss,
		schemaRepo: ss.NewSchemaRepo(),
		migrate:    NewMigrateDB(ss),
	}
}

// Init recreates the application schema as the admin role, creating
// the normal role if it is missing and granting it the schema. The
// passwords of both roles are renewed too, so the pass files which
// are used by the installation scripts are never reused. Then the
// tables are created by the schema migrations, as the normal role,
// and the resulting schema version is returned. Init may be repeated
// after an abrupt failure.
func (iduc *InitDBUseCase) Init(ctx context.Context) (int64, error) {
	if err := iduc.prepareSchema(ctx); err != nil {
		return 0, fmt.Errorf("dropping/recreating schema: %w", err)
	}
	v, err := iduc.migrate.Migrate(ctx)
	if err != nil {
		return 0, fmt.Errorf("creating tables: %w", err)
	}
	return v, nil
}

// prepareSchema runs the admin role statements of Init in a single
// transaction. The renewed passwords are only persisted in the pass
// files after that transaction is committed.
func (iduc *InitDBUseCase) prepareSchema(ctx context.Context) error {
	p, err := iduc.settings.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for admin: %w", err)
	}
	defer p.Close()
	sn := iduc.settings.SchemaName()
	var finalize func() error
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := iduc.schemaRepo.Tx(tx)
			steps := []struct {
				name string
				run  func(context.Context) error
			}{
				{"dropping schema", func(ctx context.Context) error {
					return q.DropIfExists(ctx, sn)
				}},
				{"creating schema", func(ctx context.Context) error {
					return q.CreateSchema(ctx, sn)
				}},
				{"creating normal role", func(ctx context.Context) error {
					return q.CreateRoleIfNotExists(ctx, repo.NormalRole)
				}},
				{"granting privileges", func(ctx context.Context) error {
					return q.GrantPrivileges(ctx, sn, repo.NormalRole)
				}},
				{"setting search_path", func(ctx context.Context) error {
					return q.SetSearchPath(ctx, sn, repo.NormalRole)
				}},
			}
			for _, st := range steps {
				if err := st.run(ctx); err != nil {
					return fmt.Errorf("%s (%q): %w", st.name, sn, err)
				}
			}
			var err error
			finalize, err = iduc.settings.RenewPasswords(
				ctx, q.ChangePasswords, repo.AdminRole, repo.NormalRole,
			)
			return err
		})
	})
	if err != nil {
		return fmt.Errorf("admin connection: %w", err)
	}
	if err = finalize(); err != nil {
		return fmt.Errorf("persisting renewed passwords: %w", err)
	}
	log.Info(ctx, "schema is (re)created", slog.String("schema", sn))
	return nil
}
