// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres implements the pkg/core/repo interfaces for the
// PostgreSQL DBMS using the GORM framework over the pgx driver.
// A Pool lends Conn instances and a Conn may begin a Tx. Repository
// packages (e.g., usersrp) implement their queries as generic functions
// which accept a Queryer (a *Conn or a *Tx), so each query may run on a
// connection or in a transaction alike.
//
// Constraint violations which are reported by the DBMS are translated
// to the same core errors which the integrity guard produces, so a
// write which races with the guard checks is reported consistently.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/car-api/pkg/core/cerr"
	"github.com/momeni/car-api/pkg/core/repo"
	"gorm.io/gorm"
)

// SQLSTATE codes which are translated by TranslateError.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
)

// uniqueConstraints maps the unique constraint names (as created by
// the schema migrations) to the conflicting fields.
var uniqueConstraints = map[string]string{
	"users_username_key": cerr.FieldUsername,
	"users_email_key":    cerr.FieldEmail,
	"brands_name_key":    cerr.FieldName,
	"cars_plate_key":     cerr.FieldPlate,
}

// foreignKeys maps the foreign key constraint names to the referenced
// entities.
var foreignKeys = map[string]string{
	"cars_brand_id_fkey": cerr.EntityBrand,
	"cars_owner_id_fkey": cerr.EntityOwner,
}

// TranslateError converts the gorm.ErrRecordNotFound to repo.ErrNotFound,
// the unique violations to conflict errors, and the foreign key
// violations to missing entity errors. It should be used for errors of
// the select, insert, and update statements. Other errors are returned
// as is.
func TranslateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case UniqueViolation:
		if f, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
			return cerr.Conflict(f)
		}
	case ForeignKeyViolation:
		if e, ok := foreignKeys[pgErr.ConstraintName]; ok {
			return cerr.Missing(e)
		}
	}
	return err
}

// TranslateDeleteError is like TranslateError, but is used for errors
// of the delete statements. A foreign key violation while deleting a
// row indicates that it is still referenced by some cars.
func TranslateDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == ForeignKeyViolation {
		if _, ok := foreignKeys[pgErr.ConstraintName]; ok {
			return cerr.Conflict(cerr.FieldHasCars)
		}
	}
	return TranslateError(err)
}

// EscapeLike escapes the LIKE pattern special characters of s, so it
// may be matched literally as a part of a LIKE or ILIKE pattern.
func EscapeLike(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '%', '_':
			b = append(b, '\\', c)
		default:
			b = append(b, c)
		}
	}
	return string(b)
}
