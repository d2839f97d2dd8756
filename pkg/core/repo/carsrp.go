// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/car-api/pkg/core/model"
)

// CarsConnQueryer offers the read-only cars queries. Returned cars
// have their Brand and Owner fields loaded.
type CarsConnQueryer interface {
	Get(ctx context.Context, id int64) (*model.Car, error)
	List(ctx context.Context, f model.CarFilter) ([]model.Car, error)
	PlateExists(ctx context.Context, plate string) (bool, error)
	ExistsByBrand(ctx context.Context, brandID int64) (bool, error)
	ExistsByOwner(ctx context.Context, ownerID int64) (bool, error)
}

type CarsTxQueryer interface {
	CarsConnQueryer

	Create(ctx context.Context, c *model.Car) (*model.Car, error)
	Update(ctx context.Context, c *model.Car) (*model.Car, error)
	Delete(ctx context.Context, id int64) error
}

type Cars interface {
	Conn(Conn) CarsConnQueryer
	Tx(Tx) CarsTxQueryer
}
