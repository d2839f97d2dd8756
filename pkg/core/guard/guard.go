// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package guard contains the integrity pre-checks which must pass
// before a user, brand, or car is written. Each check runs in the
// transaction of its subsequent write, so a use case may call a Guard
// method and then the relevant repository mutation atomically.
//
// Checks of one operation run in a fixed order and the first failure
// wins. Failures are *cerr.Error values with the bad request status
// code, wrapping either a *cerr.ConflictError or a *cerr.MissingError.
// Any other returned error indicates a storage failure.
//
// The database schema carries the same constraints (unique indices
// and foreign keys) and the postgres adapter maps their violations to
// the same errors, so a concurrent write which races with these checks
// is still reported consistently.
package guard

import (
	"context"
	"fmt"

	"github.com/momeni/car-api/pkg/core/cerr"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/repo"
)

// Guard runs the integrity checks using the users, brands, and cars
// repositories.
type Guard struct {
	users  repo.Users
	brands repo.Brands
	cars   repo.Cars
}

// New instantiates a Guard.
func New(users repo.Users, brands repo.Brands, cars repo.Cars) *Guard {
	return &Guard{users: users, brands: brands, cars: cars}
}

// CreateUser ensures that the username and then the email of u are
// not used by another user.
func (g *Guard) CreateUser(ctx context.Context, tx repo.Tx, u *model.User) error {
	q := g.users.Tx(tx)
	if err := unique(ctx, q.UsernameExists, u.Username, cerr.FieldUsername); err != nil {
		return err
	}
	return unique(ctx, q.EmailExists, u.Email, cerr.FieldEmail)
}

// UpdateUser repeats the CreateUser checks for the fields which differ
// between the stored old user and the updated one.
func (g *Guard) UpdateUser(
	ctx context.Context, tx repo.Tx, old, updated *model.User,
) error {
	q := g.users.Tx(tx)
	if updated.Username != old.Username {
		err := unique(ctx, q.UsernameExists, updated.Username, cerr.FieldUsername)
		if err != nil {
			return err
		}
	}
	if updated.Email != old.Email {
		return unique(ctx, q.EmailExists, updated.Email, cerr.FieldEmail)
	}
	return nil
}

// DeleteUser ensures that the id user owns no car.
func (g *Guard) DeleteUser(ctx context.Context, tx repo.Tx, id int64) error {
	q := g.cars.Tx(tx)
	return unreferenced(ctx, q.ExistsByOwner, id)
}

// CreateBrand ensures that the name of b is not used by another brand.
func (g *Guard) CreateBrand(ctx context.Context, tx repo.Tx, b *model.Brand) error {
	q := g.brands.Tx(tx)
	return unique(ctx, q.NameExists, b.Name, cerr.FieldName)
}

// UpdateBrand checks the name uniqueness if it is changed.
func (g *Guard) UpdateBrand(
	ctx context.Context, tx repo.Tx, old, updated *model.Brand,
) error {
	if updated.Name == old.Name {
		return nil
	}
	q := g.brands.Tx(tx)
	return unique(ctx, q.NameExists, updated.Name, cerr.FieldName)
}

// DeleteBrand ensures that no car references the id brand.
func (g *Guard) DeleteBrand(ctx context.Context, tx repo.Tx, id int64) error {
	q := g.cars.Tx(tx)
	return unreferenced(ctx, q.ExistsByBrand, id)
}

// CreateCar ensures that the plate of c is unique, and then, its
// brand and owner exist (in that order).
func (g *Guard) CreateCar(ctx context.Context, tx repo.Tx, c *model.Car) error {
	cq := g.cars.Tx(tx)
	if err := unique(ctx, cq.PlateExists, c.Plate, cerr.FieldPlate); err != nil {
		return err
	}
	if err := exists(ctx, g.brands.Tx(tx).Exists, c.BrandID, cerr.EntityBrand); err != nil {
		return err
	}
	return exists(ctx, g.users.Tx(tx).Exists, c.OwnerID, cerr.EntityOwner)
}

// UpdateCar repeats the CreateCar checks for the fields which differ
// between the stored old car and the updated one.
func (g *Guard) UpdateCar(
	ctx context.Context, tx repo.Tx, old, updated *model.Car,
) error {
	if updated.Plate != old.Plate {
		cq := g.cars.Tx(tx)
		err := unique(ctx, cq.PlateExists, updated.Plate, cerr.FieldPlate)
		if err != nil {
			return err
		}
	}
	if updated.BrandID != old.BrandID {
		bq := g.brands.Tx(tx)
		err := exists(ctx, bq.Exists, updated.BrandID, cerr.EntityBrand)
		if err != nil {
			return err
		}
	}
	if updated.OwnerID != old.OwnerID {
		uq := g.users.Tx(tx)
		return exists(ctx, uq.Exists, updated.OwnerID, cerr.EntityOwner)
	}
	return nil
}

func unique(
	ctx context.Context,
	lookup func(context.Context, string) (bool, error),
	value, field string,
) error {
	found, err := lookup(ctx, value)
	if err != nil {
		return fmt.Errorf("checking %s uniqueness: %w", field, err)
	}
	if found {
		return cerr.Conflict(field)
	}
	return nil
}

func exists(
	ctx context.Context,
	lookup func(context.Context, int64) (bool, error),
	id int64, entity string,
) error {
	found, err := lookup(ctx, id)
	if err != nil {
		return fmt.Errorf("checking %s existence: %w", entity, err)
	}
	if !found {
		return cerr.Missing(entity)
	}
	return nil
}

func unreferenced(
	ctx context.Context,
	lookup func(context.Context, int64) (bool, error),
	id int64,
) error {
	found, err := lookup(ctx, id)
	if err != nil {
		return fmt.Errorf("checking cars references: %w", err)
	}
	if found {
		return cerr.Conflict(cerr.FieldHasCars)
	}
	return nil
}
