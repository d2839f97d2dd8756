// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc

import (
	"context"

	"github.com/momeni/car-api/pkg/core/repo"
)

// SchemaSettings represents the database-related settings which should
// be provided by a configuration file. It allows a database connection
// pool to be established for an asked role using the ConnectionPool
// method, may be used as a factory for the repo.Schema and the
// repo.SchemaMigrator, and changes passwords of a set of database
// roles while storing them in the relevant files.
type SchemaSettings interface {
	// ConnectionPool creates a database connection pool using the
	// connection information which are kept in this SchemaSettings
	// instance. The `r` argument specifies the role name for the
	// created connection pool.
	//
	// Password values are kept in files in a specific password dir.
	// Each non-empty and non-commented line of the passwords file
	// should conform with this format:
	//
	//	host:port:dbname:role:password
	//
	// A second temporary passwords file may hold the new values of
	// passwords while they are being changed. Therefore, even in case
	// of an abrupt failure, either old or new passwords from the main
	// or temporary passwords file may be used to connect. If the
	// temporary file was used for establishment of a connection pool,
	// it will be moved to the main passwords file before returning.
	ConnectionPool(ctx context.Context, r repo.Role) (repo.Pool, error)

	// ConnectionInfo returns the database name, host, and port.
	ConnectionInfo() (dbName, host string, port int)

	// SchemaName returns the name of the application schema.
	SchemaName() string

	// NewSchemaRepo instantiates a fresh Schema repository.
	// Role names may be optionally suffixed based on the settings and
	// in that case, role names which are passed to the Schema queries
	// will be suffixed automatically.
	NewSchemaRepo() repo.Schema

	// SchemaMigrator connects to the database using the normal role
	// and returns a migrator for the application schema. Caller must
	// close the returned migrator.
	SchemaMigrator(ctx context.Context) (repo.SchemaMigrator, error)

	// RenewPasswords generates new secure passwords for the given roles
	// and after recording them in a temporary file, will use the change
	// function in order to update the passwords of those roles in the
	// database too. The change function argument should perform the
	// update operation in a transaction which may or may not be
	// committed when RenewPasswords returns. In case of a successful
	// commitment, the temporary passwords file should be moved over
	// the main passwords file using the returned finalizer function.
	RenewPasswords(
		ctx context.Context,
		change func(
			ctx context.Context,
			roles []repo.Role,
			passwords []string,
		) error,
		roles ...repo.Role,
	) (finalizer func() error, err error)
}
