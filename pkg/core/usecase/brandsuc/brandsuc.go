// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package brandsuc contains the brands UseCase which manages the car
// manufacturers. Brands which are referenced by cars may not be deleted.
package brandsuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/car-api/pkg/core/cerr"
	"github.com/momeni/car-api/pkg/core/guard"
	"github.com/momeni/car-api/pkg/core/log"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/repo"
)

// ErrBrandNotFound is reported (as a not-found error) when the target
// brand of an operation does not exist.
var ErrBrandNotFound = errors.New("brand not found")

// UseCase represents the brands use case.
type UseCase struct {
	pool     repo.Pool
	brandsrp repo.Brands
	guard    *guard.Guard

	defaultLimit int
	maxLimit     int
}

// New instantiates a brands use case.
func New(
	p repo.Pool, b repo.Brands, g *guard.Guard, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, brandsrp: b, guard: g}
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

// Create stores the b brand and returns it with its id and timestamps.
func (brands *UseCase) Create(
	ctx context.Context, b *model.Brand,
) (created *model.Brand, err error) {
	if err = cerr.Invalid(b.Validate()...); err != nil {
		return nil, err
	}
	err = brands.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if err := brands.guard.CreateBrand(ctx, tx, b); err != nil {
				return err
			}
			created, err = brands.brandsrp.Tx(tx).Create(ctx, b)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "brand created", log.EntityID("brand", created.ID))
	return created, nil
}

// List returns a page of brands, filtered by f, and the effective page.
func (brands *UseCase) List(
	ctx context.Context, f model.BrandFilter,
) ([]model.Brand, model.Page, error) {
	vs := f.Normalize(brands.defaultLimit, brands.maxLimit)
	if err := cerr.Invalid(vs...); err != nil {
		return nil, f.Page, err
	}
	var bs []model.Brand
	err := brands.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (err error) {
		bs, err = brands.brandsrp.Conn(c).List(ctx, f)
		return err
	})
	if err != nil {
		return nil, f.Page, err
	}
	return bs, f.Page, nil
}

// Get returns the id brand.
func (brands *UseCase) Get(ctx context.Context, id int64) (*model.Brand, error) {
	var b *model.Brand
	err := brands.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (err error) {
		b, err = brands.brandsrp.Conn(c).Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

// Update applies the non-nil fields of patch to the id brand.
func (brands *UseCase) Update(
	ctx context.Context, id int64, patch model.BrandPatch,
) (b *model.Brand, err error) {
	err = brands.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := brands.brandsrp.Tx(tx)
			old, err := q.Get(ctx, id)
			if err != nil {
				return err
			}
			updated := *old
			patch.Apply(&updated)
			if err = cerr.Invalid(updated.Validate()...); err != nil {
				return err
			}
			err = brands.guard.UpdateBrand(ctx, tx, old, &updated)
			if err != nil {
				return err
			}
			b, err = q.Update(ctx, &updated)
			return err
		})
	})
	if err != nil {
		return nil, notFound(err)
	}
	log.Info(ctx, "brand updated", log.EntityID("brand", b.ID))
	return b, nil
}

// Delete removes the id brand unless some car references it.
func (brands *UseCase) Delete(ctx context.Context, id int64) error {
	err := brands.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := brands.brandsrp.Tx(tx)
			found, err := q.Exists(ctx, id)
			if err != nil {
				return err
			}
			if !found {
				return repo.ErrNotFound
			}
			if err = brands.guard.DeleteBrand(ctx, tx, id); err != nil {
				return err
			}
			return q.Delete(ctx, id)
		})
	})
	if err != nil {
		return notFound(err)
	}
	log.Info(ctx, "brand deleted", log.EntityID("brand", id))
	return nil
}

func notFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return cerr.NotFound(ErrBrandNotFound)
	}
	return err
}
