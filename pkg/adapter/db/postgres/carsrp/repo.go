// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrp implements the repo.Cars interface for PostgreSQL.
// Cars are always queried with their brand and owner rows.
package carsrp

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

func (cars *Repo) Conn(c repo.Conn) repo.CarsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Get(ctx context.Context, id int64) (*model.Car, error) {
	return Get(ctx, cq.Conn, id)
}

func (cq connQueryer) List(ctx context.Context, f model.CarFilter) ([]model.Car, error) {
	return List(ctx, cq.Conn, f)
}

func (cq connQueryer) PlateExists(ctx context.Context, plate string) (bool, error) {
	return PlateExists(ctx, cq.Conn, plate)
}

func (cq connQueryer) ExistsByBrand(ctx context.Context, brandID int64) (bool, error) {
	return ExistsByBrand(ctx, cq.Conn, brandID)
}

func (cq connQueryer) ExistsByOwner(ctx context.Context, ownerID int64) (bool, error) {
	return ExistsByOwner(ctx, cq.Conn, ownerID)
}

type txQueryer struct {
	*postgres.Tx
}

func (cars *Repo) Tx(tx repo.Tx) repo.CarsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Get(ctx context.Context, id int64) (*model.Car, error) {
	return Get(ctx, tq.Tx, id)
}

func (tq txQueryer) List(ctx context.Context, f model.CarFilter) ([]model.Car, error) {
	return List(ctx, tq.Tx, f)
}

func (tq txQueryer) PlateExists(ctx context.Context, plate string) (bool, error) {
	return PlateExists(ctx, tq.Tx, plate)
}

func (tq txQueryer) ExistsByBrand(ctx context.Context, brandID int64) (bool, error) {
	return ExistsByBrand(ctx, tq.Tx, brandID)
}

func (tq txQueryer) ExistsByOwner(ctx context.Context, ownerID int64) (bool, error) {
	return ExistsByOwner(ctx, tq.Tx, ownerID)
}

func (tq txQueryer) Create(ctx context.Context, c *model.Car) (*model.Car, error) {
	return Create(ctx, tq.Tx, c)
}

func (tq txQueryer) Update(ctx context.Context, c *model.Car) (*model.Car, error) {
	return Update(ctx, tq.Tx, c)
}

func (tq txQueryer) Delete(ctx context.Context, id int64) error {
	return Delete(ctx, tq.Tx, id)
}
