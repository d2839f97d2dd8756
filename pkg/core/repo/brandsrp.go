// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/car-api/pkg/core/model"
)

type BrandsConnQueryer interface {
	Get(ctx context.Context, id int64) (*model.Brand, error)
	List(ctx context.Context, f model.BrandFilter) ([]model.Brand, error)
	Exists(ctx context.Context, id int64) (bool, error)
	NameExists(ctx context.Context, name string) (bool, error)
}

type BrandsTxQueryer interface {
	BrandsConnQueryer

	Create(ctx context.Context, b *model.Brand) (*model.Brand, error)
	Update(ctx context.Context, b *model.Brand) (*model.Brand, error)
	Delete(ctx context.Context, id int64) error
}

type Brands interface {
	Conn(Conn) BrandsConnQueryer
	Tx(Tx) BrandsTxQueryer
}
