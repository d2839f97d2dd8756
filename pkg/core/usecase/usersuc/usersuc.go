// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersuc contains the users UseCase which supports signing
// up, listing, fetching, updating, and deleting of users.
package usersuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/car-api/pkg/core/cerr"
	"github.com/momeni/car-api/pkg/core/guard"
	"github.com/momeni/car-api/pkg/core/log"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/passwd"
	"github.com/momeni/car-api/pkg/core/repo"
)

// ErrUserNotFound is reported (as a not-found error) when the target
// user of an operation does not exist.
var ErrUserNotFound = errors.New("user not found")

// UseCase represents the users use case.
type UseCase struct {
	pool    repo.Pool
	usersrp repo.Users
	guard   *guard.Guard
	hasher  passwd.Hasher

	defaultLimit int
	maxLimit     int
}

// New instantiates a users use case.
func New(
	p repo.Pool,
	u repo.Users,
	g *guard.Guard,
	h passwd.Hasher,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, usersrp: u, guard: g, hasher: h}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.maxLimit == 0 {
		uc.defaultLimit = model.DefaultPageLimit
		uc.maxLimit = model.MaxPageLimit
	}
	return uc, nil
}

// Create signs up a new user. The password is stored as a digest.
func (users *UseCase) Create(
	ctx context.Context, username, email, password string,
) (*model.User, error) {
	u := &model.User{Username: username, Email: email}
	vs := append(u.Validate(), model.ValidatePassword(password)...)
	if err := cerr.Invalid(vs...); err != nil {
		return nil, err
	}
	digest, err := users.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	u.PasswordHash = digest
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if err := users.guard.CreateUser(ctx, tx, u); err != nil {
				return err
			}
			u, err = users.usersrp.Tx(tx).Create(ctx, u)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "user created", log.EntityID("user", u.ID))
	return u, nil
}

// List returns a page of users, filtered by f. The returned page
// holds the effective offset and limit.
func (users *UseCase) List(
	ctx context.Context, f model.UserFilter,
) ([]model.User, model.Page, error) {
	vs := f.Normalize(users.defaultLimit, users.maxLimit)
	if err := cerr.Invalid(vs...); err != nil {
		return nil, f.Page, err
	}
	var us []model.User
	err := users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (err error) {
		us, err = users.usersrp.Conn(c).List(ctx, f)
		return err
	})
	if err != nil {
		return nil, f.Page, err
	}
	return us, f.Page, nil
}

// Get returns the id user.
func (users *UseCase) Get(ctx context.Context, id int64) (*model.User, error) {
	var u *model.User
	err := users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (err error) {
		u, err = users.usersrp.Conn(c).Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// Update applies the non-nil fields of patch to the id user.
func (users *UseCase) Update(
	ctx context.Context, id int64, patch model.UserPatch,
) (*model.User, error) {
	var digest string
	if patch.Password != nil {
		vs := model.ValidatePassword(*patch.Password)
		if err := cerr.Invalid(vs...); err != nil {
			return nil, err
		}
		d, err := users.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		digest = d
	}
	var u *model.User
	err := users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := users.usersrp.Tx(tx)
			old, err := q.Get(ctx, id)
			if err != nil {
				return err
			}
			updated := *old
			if patch.Username != nil {
				updated.Username = *patch.Username
			}
			if patch.Email != nil {
				updated.Email = *patch.Email
			}
			if digest != "" {
				updated.PasswordHash = digest
			}
			if err = cerr.Invalid(updated.Validate()...); err != nil {
				return err
			}
			err = users.guard.UpdateUser(ctx, tx, old, &updated)
			if err != nil {
				return err
			}
			u, err = q.Update(ctx, &updated)
			return err
		})
	})
	if err != nil {
		return nil, notFound(err)
	}
	log.Info(ctx, "user updated", log.EntityID("user", u.ID))
	return u, nil
}

// Delete removes the id user. Users who own cars may not be deleted.
func (users *UseCase) Delete(ctx context.Context, id int64) error {
	err := users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := users.usersrp.Tx(tx)
			found, err := q.Exists(ctx, id)
			if err != nil {
				return err
			}
			if !found {
				return repo.ErrNotFound
			}
			if err = users.guard.DeleteUser(ctx, tx, id); err != nil {
				return err
			}
			return q.Delete(ctx, id)
		})
	})
	if err != nil {
		return notFound(err)
	}
	log.Info(ctx, "user deleted", log.EntityID("user", id))
	return nil
}

func notFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return cerr.NotFound(ErrUserNotFound)
	}
	return err
}
