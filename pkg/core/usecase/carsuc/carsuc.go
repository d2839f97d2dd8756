// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsuc contains the cars UseCase which supports the cars
// related use cases, namely registering, listing, fetching, updating,
// and deleting of cars. Each car must reference an existing brand and
// an existing owner (user), and has a unique plate.
package carsuc

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

// ErrCarNotFound is reported (as a not-found error) when the target
// car of an operation does not exist.
var ErrCarNotFound = errors.New("car not found")

// UseCase represents a cars use case. It holds a database connection
// pool, the cars repository instance (to be guided with the DB pool),
// the integrity guard, and the cars use case specific settings.
type UseCase struct {
	pool   repo.Pool
	carsrp repo.Cars
	guard  *guard.Guard

	defaultLimit int
	maxLimit     int
}

// New instantiates a cars use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool, c repo.Cars, g *guard.Guard, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, carsrp: c, guard: g}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.maxLimit == 0 {
		uc.defaultLimit = model.DefaultPageLimit
		uc.maxLimit = model.MaxPageLimit
	}
	return uc, nil
}

// Create use case registers the car after normalizing its plate and
// returns it with its brand and owner loaded.
func (cars *UseCase) Create(
	ctx context.Context, car *model.Car,
) (created *model.Car, err error) {
	c := *car
	c.Plate = model.NormalizePlate(c.Plate)
	if err = cerr.Invalid(c.Validate()...); err != nil {
		return nil, err
	}
	err = cars.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return conn.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if err := cars.guard.CreateCar(ctx, tx, &c); err != nil {
				return err
			}
			created, err = cars.carsrp.Tx(tx).Create(ctx, &c)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(
		ctx, "car created",
		log.EntityID("car", created.ID), log.EntityID("owner", created.OwnerID),
	)
	return created, nil
}

// List returns a page of cars, filtered by f, and the effective page.
func (cars *UseCase) List(
	ctx context.Context, f model.CarFilter,
) ([]model.Car, model.Page, error) {
	vs := f.Normalize(cars.defaultLimit, cars.maxLimit)
	if f.FuelType != nil {
		if err := f.FuelType.Validate(); err != nil {
			vs = append(vs, model.Violation{
				Field: "fuel_type", Message: err.Error(),
			})
		}
	}
	if f.Transmission != nil {
		if err := f.Transmission.Validate(); err != nil {
			vs = append(vs, model.Violation{
				Field: "transmission", Message: err.Error(),
			})
		}
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		vs = append(vs, model.Violation{
			Field: "min_price", Message: "must not exceed max_price",
		})
	}
	if err := cerr.Invalid(vs...); err != nil {
		return nil, f.Page, err
	}
	var cs []model.Car
	err := cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (err error) {
		cs, err = cars.carsrp.Conn(c).List(ctx, f)
		return err
	})
	if err != nil {
		return nil, f.Page, err
	}
	return cs, f.Page, nil
}

// Get use case returns the id car with its brand and owner.
func (cars *UseCase) Get(ctx context.Context, id int64) (*model.Car, error) {
	var car *model.Car
	err := cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (err error) {
		car, err = cars.carsrp.Conn(c).Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, notFound(err)
	}
	return car, nil
}

// Update use case applies the non-nil fields of patch to the id car.
// Changed plate, brand, and owner fields are checked again.
func (cars *UseCase) Update(
	ctx context.Context, id int64, patch model.CarPatch,
) (car *model.Car, err error) {
	if patch.Plate != nil {
		p := model.NormalizePlate(*patch.Plate)
		patch.Plate = &p
	}
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := cars.carsrp.Tx(tx)
			old, err := q.Get(ctx, id)
			if err != nil {
				return err
			}
			updated := *old
			patch.Apply(&updated)
			if err = cerr.Invalid(updated.Validate()...); err != nil {
				return err
			}
			err = cars.guard.UpdateCar(ctx, tx, old, &updated)
			if err != nil {
				return err
			}
			car, err = q.Update(ctx, &updated)
			return err
		})
	})
	if err != nil {
		return nil, notFound(err)
	}
	log.Info(ctx, "car updated", log.EntityID("car", car.ID))
	return car, nil
}

// Delete use case removes the id car.
func (cars *UseCase) Delete(ctx context.Context, id int64) error {
	err := cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return cars.carsrp.Tx(tx).Delete(ctx, id)
		})
	})
	if err != nil {
		return notFound(err)
	}
	log.Info(ctx, "car deleted", log.EntityID("car", id))
	return nil
}

func notFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return cerr.NotFound(ErrCarNotFound)
	}
	return err
}
