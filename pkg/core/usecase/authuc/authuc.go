// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authuc contains the authentication UseCase. It checks the
// login credentials of users against the users repository, issues
// bearer tokens for them, and recovers the acting identity from the
// presented tokens. Issued tokens may be revoked (i.e., logout) if a
// token.Denylist is configured.
package authuc

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/momeni/car-api/pkg/core/cerr"
	"github.com/momeni/car-api/pkg/core/log"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/passwd"
	"github.com/momeni/car-api/pkg/core/repo"
	"github.com/momeni/car-api/pkg/core/token"
)

// UseCase represents the authentication use case.
type UseCase struct {
	pool     repo.Pool
	usersrp  repo.Users
	hasher   passwd.Hasher
	codec    token.Codec
	denylist token.Denylist // nil disables revocation
	now      func() time.Time

	// dummyDigest is verified for unknown emails, so a failed login
	// costs one hash verification regardless of its cause.
	dummyDigest string
}

// New instantiates an authentication use case.
func New(
	p repo.Pool,
	u repo.Users,
	h passwd.Hasher,
	c token.Codec,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, usersrp: u, hasher: h, codec: c}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	random := make([]byte, 18)
	if _, err := rand.Read(random); err != nil {
		return nil, fmt.Errorf("creating dummy password: %w", err)
	}
	d, err := h.Hash(base64.RawStdEncoding.EncodeToString(random))
	if err != nil {
		return nil, fmt.Errorf("hashing dummy password: %w", err)
	}
	uc.dummyDigest = d
	return uc, nil
}

// Login checks the email and password credentials and issues a token
// for the matching user. Unknown emails, wrong passwords, and too long
// passwords are all reported by the same cerr.ErrInvalidCredentials
// error. Long passwords are never hashed; the dummy digest is verified
// against an empty password instead.
func (auth *UseCase) Login(
	ctx context.Context, email, password string,
) (*model.Token, error) {
	if len(password) > model.MaxPasswordLen*utf8.UTFMax ||
		utf8.RuneCountInString(password) > model.MaxPasswordLen {
		auth.hasher.Verify("", auth.dummyDigest)
		log.Info(ctx, "login failed", slog.String("reason", "long password"))
		return nil, cerr.Authentication(cerr.ErrInvalidCredentials)
	}
	var u *model.User
	err := auth.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (err error) {
		u, err = auth.usersrp.Conn(c).GetByEmail(ctx, email)
		return err
	})
	switch {
	case errors.Is(err, repo.ErrNotFound):
		auth.hasher.Verify(password, auth.dummyDigest)
		log.Info(ctx, "login failed", slog.String("reason", "unknown email"))
		return nil, cerr.Authentication(cerr.ErrInvalidCredentials)
	case err != nil:
		return nil, fmt.Errorf("finding user by email: %w", err)
	}
	if !auth.hasher.Verify(password, u.PasswordHash) {
		log.Info(
			ctx, "login failed",
			slog.String("reason", "wrong password"), log.EntityID("user", u.ID),
		)
		return nil, cerr.Authentication(cerr.ErrInvalidCredentials)
	}
	tok, err := auth.codec.Issue(u.ID, auth.now())
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	log.Info(ctx, "user logged in", log.EntityID("user", u.ID))
	return tok, nil
}

// Authenticate verifies the tok token and returns the identity which
// it represents. The credential store is not consulted, so a token
// stays usable until its expiration unless it is revoked.
func (auth *UseCase) Authenticate(
	ctx context.Context, tok string,
) (*model.Identity, error) {
	cl, err := auth.codec.Verify(tok, auth.now())
	switch {
	case errors.Is(err, token.ErrExpired):
		return nil, cerr.Authentication(cerr.ErrTokenExpired)
	case err != nil:
		log.Debug(ctx, "rejected token", log.Err(err))
		return nil, cerr.Authentication(cerr.ErrTokenInvalid)
	}
	if auth.denylist != nil {
		revoked, err := auth.denylist.IsRevoked(ctx, cl.ID)
		if err != nil {
			return nil, fmt.Errorf("checking token revocation: %w", err)
		}
		if revoked {
			return nil, cerr.Authentication(cerr.ErrTokenInvalid)
		}
	}
	return &model.Identity{
		UserID:  cl.Subject,
		TokenID: cl.ID,
		Expires: cl.ExpiresAt,
	}, nil
}

// Refresh issues a new token for the subject of the valid tok token.
// The tok token is not revoked and remains valid until it expires.
func (auth *UseCase) Refresh(
	ctx context.Context, tok string,
) (*model.Token, error) {
	id, err := auth.Authenticate(ctx, tok)
	if err != nil {
		return nil, err
	}
	fresh, err := auth.codec.Issue(id.UserID, auth.now())
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	return fresh, nil
}

// Logout revokes the valid tok token until its expiration time.
// Without a configured denylist, it only validates tok.
func (auth *UseCase) Logout(ctx context.Context, tok string) error {
	id, err := auth.Authenticate(ctx, tok)
	if err != nil {
		return err
	}
	if auth.denylist == nil {
		return nil
	}
	ttl := id.Expires.Sub(auth.now())
	if err = auth.denylist.Revoke(ctx, id.TokenID, ttl); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	log.Info(ctx, "user logged out", log.EntityID("user", id.UserID))
	return nil
}
