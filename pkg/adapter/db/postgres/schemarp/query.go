// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/momeni/car-api/pkg/adapter/db/postgres"
	"github.com/momeni/car-api/pkg/core/repo"
	"github.com/momeni/car-api/pkg/core/scram"
)

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func roleName(roleSuffix, role repo.Role) string {
	return ident(string(role) + string(roleSuffix))
}

// DropIfExists drops the `schema` schema with cascading if it exists.
// Caller is responsible to pass a trusted schema name string, although
// it is quoted as an identifier.
func DropIfExists[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	_, err := q.Exec(ctx, "DROP SCHEMA IF EXISTS "+ident(schema)+" CASCADE")
	if err != nil {
		return fmt.Errorf("dropping %q schema: %w", schema, err)
	}
	return nil
}

// CreateSchema tries to create the `schema` schema.
// There must be no other schema with the `schema` name, otherwise,
// this operation will fail.
func CreateSchema[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	if _, err := q.Exec(ctx, "CREATE SCHEMA "+ident(schema)); err != nil {
		return fmt.Errorf("creating %q schema: %w", schema, err)
	}
	return nil
}

// CreateRoleIfNotExists creates the `role` role if it does not
// exist right now. Although the login option is enabled for the
// created role, but no specific password will be set for it.
// The ChangePasswords function may be used for setting a password.
func CreateRoleIfNotExists[Q postgres.Queryer](
	ctx context.Context, q Q, roleSuffix repo.Role, role repo.Role,
) error {
	name := string(role) + string(roleSuffix)
	found, err := postgres.Exists(ctx, q, "pg_roles", "rolname = ?", name)
	if err != nil {
		return fmt.Errorf("finding %q role: %w", name, err)
	}
	if found {
		return nil
	}
	if _, err = q.Exec(ctx, "CREATE ROLE "+ident(name)+" LOGIN"); err != nil {
		return fmt.Errorf("creating %q role: %w", name, err)
	}
	return nil
}

// GrantPrivileges makes `role` the owner of `schema`, so it may create
// tables in it and run the migrations.
func GrantPrivileges[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	roleSuffix repo.Role,
	schema string,
	role repo.Role,
) error {
	r := roleName(roleSuffix, role)
	for _, sql := range []string{
		"ALTER SCHEMA " + ident(schema) + " OWNER TO " + r,
		"GRANT ALL PRIVILEGES ON SCHEMA " + ident(schema) + " TO " + r,
	} {
		if _, err := q.Exec(ctx, sql); err != nil {
			return fmt.Errorf("granting privileges to %s: %w", r, err)
		}
	}
	return nil
}

// SetSearchPath alters the given database role and sets its default
// search_path to the given schema name alone.
func SetSearchPath[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	roleSuffix repo.Role,
	schema string,
	role repo.Role,
) error {
	r := roleName(roleSuffix, role)
	_, err := q.Exec(ctx, "ALTER ROLE "+r+" SET search_path TO "+ident(schema))
	if err != nil {
		return fmt.Errorf("setting search_path of %s: %w", r, err)
	}
	return nil
}

// ChangePasswords updates the passwords of the given roles in the
// current transaction. The roles and passwords slices must have the
// same number of entries, so they can be used in pair.
// The `hasher` is used for hashing of the `passwords` before sending
// them to the DBMS (so they may not leak in plaintext).
func ChangePasswords(
	ctx context.Context,
	tx *postgres.Tx,
	roleSuffix repo.Role,
	hasher scram.Hasher,
	roles []repo.Role,
	passwords []string,
) error {
	if len(roles) != len(passwords) {
		return fmt.Errorf(
			"got %d roles and %d passwords", len(roles), len(passwords),
		)
	}
	for i, role := range roles {
		h, err := hasher.Hash(passwords[i])
		if err != nil {
			return fmt.Errorf("hashing password of %q role: %w", role, err)
		}
		r := roleName(roleSuffix, role)
		_, err = tx.Exec(ctx, "ALTER ROLE "+r+" PASSWORD "+literal(h))
		if err != nil {
			return fmt.Errorf("altering password of %s: %w", r, err)
		}
	}
	return nil
}

// literal quotes s as a SQL string constant. The ALTER ROLE statement
// accepts no bind parameters.
func literal(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
