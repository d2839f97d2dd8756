// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package token exports the expected interfaces for issuing and
// verifying of the bearer tokens, and for their optional revocation.
// Implementations live in the adapter layer.
package token

import (
	"context"
	"errors"
	"time"

	"github.com/momeni/car-api/pkg/core/model"
)

// These errors are returned (possibly wrapped) by Codec.Verify.
// Callers distinguish them with errors.Is in order to report
// different messages.
var (
	// ErrExpired indicates a token with a valid signature whose
	// expiration time is not after the verification time.
	ErrExpired = errors.New("token expired")

	// ErrInvalid indicates a malformed token, a token with a wrong
	// signature or algorithm, or a token without a usable subject.
	ErrInvalid = errors.New("token invalid")
)

// Codec signs and verifies time-bound tokens. The time of each
// operation is passed explicitly, so codecs are pure functions of
// their inputs and their secret key.
type Codec interface {
	// Issue creates a token for the sub subject (user id) which
	// expires after a fixed TTL, counting from now.
	Issue(sub int64, now time.Time) (*model.Token, error)

	// Verify checks the signature and then the expiration time of
	// token with respect to now. It fails with ErrExpired or ErrInvalid.
	// Signatures are checked first, so a tampered token is never
	// reported as expired.
	Verify(token string, now time.Time) (*model.Claims, error)
}

// Denylist keeps the ids of revoked tokens until they expire anyway.
type Denylist interface {
	// Revoke records the id token as revoked for the ttl duration.
	// Non-positive ttl values are ignored.
	Revoke(ctx context.Context, id string, ttl time.Duration) error

	// IsRevoked reports whether the id token was revoked.
	IsRevoked(ctx context.Context, id string) (bool, error)
}
