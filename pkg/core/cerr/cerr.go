// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr contains the core errors. An Error wraps another error
// and annotates it with the HTTP status code which should be reported
// when it reaches a REST API. Although the core layer does not know
// about HTTP, status codes are a convenient and widely known taxonomy
// of error kinds, so they are used instead of declaring another enum.
package cerr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func Authentication(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnauthorized}
}

func Authorization(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusForbidden}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Validation reports a malformed or out of range input.
func Validation(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnprocessableEntity}
}

// TooManyRequests reports that a caller exceeded its attempts quota.
func TooManyRequests(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusTooManyRequests}
}

// Conflict reports a uniqueness or dependency violation on the given
// field. Conflicts are caller-recoverable and reported as bad requests.
func Conflict(field string) *Error {
	return BadRequest(&ConflictError{Field: field})
}

// Missing reports that a referenced entity does not exist. It is
// a bad request (and not a not-found) because the request target
// itself exists or is being created.
func Missing(entity string) *Error {
	return BadRequest(&MissingError{Entity: entity})
}
