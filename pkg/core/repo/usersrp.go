// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/car-api/pkg/core/model"
)

// UsersConnQueryer offers the read-only users queries.
type UsersConnQueryer interface {
	// Get returns the id user or ErrNotFound.
	Get(ctx context.Context, id int64) (*model.User, error)
	// GetByEmail returns the user with the given email or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, f model.UserFilter) ([]model.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// UsersTxQueryer offers all users queries, including the mutating ones.
type UsersTxQueryer interface {
	UsersConnQueryer

	// Create inserts u and returns the stored user, having its ID and
	// timestamps filled.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	// Update overwrites the stored u.ID user with the u fields and
	// refreshes its UpdatedAt timestamp. Missing rows cause ErrNotFound.
	Update(ctx context.Context, u *model.User) (*model.User, error)
	// Delete removes the id user or returns ErrNotFound.
	Delete(ctx context.Context, id int64) error
}

// Users is the users repository (also known as the credential store).
type Users interface {
	Conn(Conn) UsersConnQueryer
	Tx(Tx) UsersTxQueryer
}
