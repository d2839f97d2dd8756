// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Schema is the schema management repository. Its queries need the
// administrator privileges, so they should be run using a connection
// which is created for the AdminRole.
type Schema interface {
	Tx(Tx) SchemaTxQueryer
}

// SchemaTxQueryer lists the schema management queries. Role names are
// suffixed with the configured role suffix by the implementation.
type SchemaTxQueryer interface {
	// DropIfExists drops the schema (and all of its contents) if it
	// exists.
	DropIfExists(ctx context.Context, schema string) error

	// CreateSchema creates the schema, or fails if it exists already.
	CreateSchema(ctx context.Context, schema string) error

	// CreateRoleIfNotExists creates role (with the LOGIN attribute)
	// unless it exists already.
	CreateRoleIfNotExists(ctx context.Context, role Role) error

	// GrantPrivileges makes role the owner of the schema, so it may
	// create and alter tables in it (i.e., running migrations).
	GrantPrivileges(ctx context.Context, schema string, role Role) error

	// SetSearchPath configures role to look up unqualified names in
	// the schema by default.
	SetSearchPath(ctx context.Context, schema string, role Role) error

	// ChangePasswords sets passwords[i] as the password of roles[i].
	// Passwords are hashed before being sent to the DBMS, so they
	// are not leaked into its statement logs.
	ChangePasswords(
		ctx context.Context, roles []Role, passwords []string,
	) error
}

// SchemaMigrator applies the pending schema migrations.
type SchemaMigrator interface {
	// Up applies all pending migrations, returning the resulting
	// schema version.
	Up(ctx context.Context) (int64, error)

	// Version reports the current schema version.
	Version(ctx context.Context) (int64, error)

	// Close releases the database connection of the migrator.
	Close() error
}
