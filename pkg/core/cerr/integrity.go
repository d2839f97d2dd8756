// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import "errors"

// Conflicting fields which may be reported by a ConflictError.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldName     = "name"
	FieldPlate    = "plate"
	FieldHasCars  = "hasCars"
)

// Referenced entities which may be reported by a MissingError.
const (
	EntityBrand = "brand"
	EntityOwner = "owner"
)

// ConflictError indicates that Field value collides with an existing
// record, or for FieldHasCars, that the record is still referenced.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	switch e.Field {
	case FieldUsername:
		return "username is already in use"
	case FieldEmail:
		return "email is already in use"
	case FieldName:
		return "brand name is already in use"
	case FieldPlate:
		return "plate is already in use"
	case FieldHasCars:
		return "cannot delete a record which has cars"
	default:
		return e.Field + " is already in use"
	}
}

// MissingError indicates that a referenced Entity does not exist.
type MissingError struct {
	Entity string
}

func (e *MissingError) Error() string {
	return e.Entity + " not found"
}

// ErrInvalidCredentials is returned by a login attempt with an unknown
// email or a wrong password. Both cases share this one error.
var ErrInvalidCredentials = errors.New("Incorrect email or password")

// These errors are reported for tokens which may not authenticate
// a request.
var (
	ErrTokenExpired = errors.New("Token has expired")
	ErrTokenInvalid = errors.New("Could not validate credentials")
)

// ErrTooManyAttempts is returned when a client exceeds its login quota.
var ErrTooManyAttempts = errors.New("too many login attempts")
