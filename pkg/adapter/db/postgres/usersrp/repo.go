// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrp implements the repo.Users interface for PostgreSQL.
package usersrp

import (
	"context"

	"github.com/momeni/car-api/pkg/adapter/db/postgres"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (users *Repo) Conn(c repo.Conn) repo.UsersConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Get(ctx context.Context, id int64) (*model.User, error) {
	return Get(ctx, cq.Conn, id)
}

func (cq connQueryer) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return GetByEmail(ctx, cq.Conn, email)
}

func (cq connQueryer) List(ctx context.Context, f model.UserFilter) ([]model.User, error) {
	return List(ctx, cq.Conn, f)
}

func (cq connQueryer) Exists(ctx context.Context, id int64) (bool, error) {
	return Exists(ctx, cq.Conn, id)
}

func (cq connQueryer) UsernameExists(ctx context.Context, username string) (bool, error) {
	return UsernameExists(ctx, cq.Conn, username)
}

func (cq connQueryer) EmailExists(ctx context.Context, email string) (bool, error) {
	return EmailExists(ctx, cq.Conn, email)
}

type txQueryer struct {
	*postgres.Tx
}

func (users *Repo) Tx(tx repo.Tx) repo.UsersTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Get(ctx context.Context, id int64) (*model.User, error) {
	return Get(ctx, tq.Tx, id)
}

func (tq txQueryer) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return GetByEmail(ctx, tq.Tx, email)
}

func (tq txQueryer) List(ctx context.Context, f model.UserFilter) ([]model.User, error) {
	return List(ctx, tq.Tx, f)
}

func (tq txQueryer) Exists(ctx context.Context, id int64) (bool, error) {
	return Exists(ctx, tq.Tx, id)
}

func (tq txQueryer) UsernameExists(ctx context.Context, username string) (bool, error) {
	return UsernameExists(ctx, tq.Tx, username)
}

func (tq txQueryer) EmailExists(ctx context.Context, email string) (bool, error) {
	return EmailExists(ctx, tq.Tx, email)
}

func (tq txQueryer) Create(ctx context.Context, u *model.User) (*model.User, error) {
	return Create(ctx, tq.Tx, u)
}

func (tq txQueryer) Update(ctx context.Context, u *model.User) (*model.User, error) {
	return Update(ctx, tq.Tx, u)
}

func (tq txQueryer) Delete(ctx context.Context, id int64) error {
	return Delete(ctx, tq.Tx, id)
}
