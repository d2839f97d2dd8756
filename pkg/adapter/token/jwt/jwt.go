// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package jwt implements the pkg/core/token.Codec interface with
// HMAC-SHA256 signed JSON web tokens, relying on the
// github.com/golang-jwt/jwt/v5 module.
package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/token"
)

// MinSecretLength is the least accepted length of the signing key.
const MinSecretLength = 32

var method = jwt.SigningMethodHS256

// Codec issues and verifies HS256 tokens with a fixed secret and TTL.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// New creates a Codec. The secret must have at least MinSecretLength
// bytes and ttl must be positive.
func New(secret []byte, ttl time.Duration) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf(
			"secret length (%d) is less than %d",
			len(secret), MinSecretLength,
		)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl (%v) must be positive", ttl)
	}
	s := make([]byte, len(secret))
	copy(s, secret)
	return &Codec{secret: s, ttl: ttl}, nil
}

// TTL returns the lifetime of the issued tokens.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for the sub user id. The JWT NumericDate type
// has a one second resolution, so the token is issued at now truncated
// to seconds and expires exactly TTL after its iat claim.
func (c *Codec) Issue(sub int64, now time.Time) (*model.Token, error) {
	iat := now.Truncate(time.Second)
	exp := iat.Add(c.ttl)
	id := uuid.NewString()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(sub, 10),
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(iat),
		ID:        id,
	}
	s, err := jwt.NewWithClaims(method, claims).SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}
	return &model.Token{
		Access:    s,
		Type:      model.TokenTypeBearer,
		ID:        id,
		ExpiresAt: exp,
	}, nil
}

// Verify parses s and checks its signature before its expiration time.
// A token is expired when now is not before its exp claim.
func (c *Codec) Verify(s string, now time.Time) (*model.Claims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		s, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("%w: %w", token.ErrExpired, err)
	default:
		return nil, fmt.Errorf("%w: %w", token.ErrInvalid, err)
	}
	sub, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || sub <= 0 {
		return nil, fmt.Errorf("%w: bad subject %q", token.ErrInvalid, claims.Subject)
	}
	return &model.Claims{
		Subject:   sub,
		ID:        claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
