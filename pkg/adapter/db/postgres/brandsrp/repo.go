// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package brandsrp implements the repo.Brands interface for PostgreSQL.
package brandsrp

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

func (brands *Repo) Conn(c repo.Conn) repo.BrandsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Get(ctx context.Context, id int64) (*model.Brand, error) {
	return Get(ctx, cq.Conn, id)
}

func (cq connQueryer) List(ctx context.Context, f model.BrandFilter) ([]model.Brand, error) {
	return List(ctx, cq.Conn, f)
}

func (cq connQueryer) Exists(ctx context.Context, id int64) (bool, error) {
	return Exists(ctx, cq.Conn, id)
}

func (cq connQueryer) NameExists(ctx context.Context, name string) (bool, error) {
	return NameExists(ctx, cq.Conn, name)
}

type txQueryer struct {
	*postgres.Tx
}

func (brands *Repo) Tx(tx repo.Tx) repo.BrandsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Get(ctx context.Context, id int64) (*model.Brand, error) {
	return Get(ctx, tq.Tx, id)
}

func (tq txQueryer) List(ctx context.Context, f model.BrandFilter) ([]model.Brand, error) {
	return List(ctx, tq.Tx, f)
}

func (tq txQueryer) Exists(ctx context.Context, id int64) (bool, error) {
	return Exists(ctx, tq.Tx, id)
}

func (tq txQueryer) NameExists(ctx context.Context, name string) (bool, error) {
	return NameExists(ctx, tq.Tx, name)
}

func (tq txQueryer) Create(ctx context.Context, b *model.Brand) (*model.Brand, error) {
	return Create(ctx, tq.Tx, b)
}

func (tq txQueryer) Update(ctx context.Context, b *model.Brand) (*model.Brand, error) {
	return Update(ctx, tq.Tx, b)
}

func (tq txQueryer) Delete(ctx context.Context, id int64) error {
	return Delete(ctx, tq.Tx, id)
}
