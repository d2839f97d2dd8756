// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package appuc provides the application UseCase which holds all other
// use cases of the web server. It creates them with a Builder, so the
// configuration layer may decide about their options, and shares one
// integrity guard among them.
package appuc

import (
	"context"
	"fmt"

	"github.com/momeni/car-api/pkg/core/guard"
	"github.com/momeni/car-api/pkg/core/repo"
	"github.com/momeni/car-api/pkg/core/usecase/authuc"
	"github.com/momeni/car-api/pkg/core/usecase/brandsuc"
	"github.com/momeni/car-api/pkg/core/usecase/carsuc"
	"github.com/momeni/car-api/pkg/core/usecase/usersuc"
)

// Repos lists the repositories which are needed by the use cases.
type Repos struct {
	Users  repo.Users
	Brands repo.Brands
	Cars   repo.Cars
}

// UseCase represents the application use case. Its use cases are
// created once and never replaced, so it may be used concurrently.
type UseCase struct {
	pool repo.Pool

	auth   *authuc.UseCase
	users  *usersuc.UseCase
	brands *brandsuc.UseCase
	cars   *carsuc.UseCase
}

// New creates the application use case and all of its nested use cases
// using the b builder.
func New(p repo.Pool, rs Repos, b Builder) (*UseCase, error) {
	g := guard.New(rs.Users, rs.Brands, rs.Cars)
	uc := &UseCase{pool: p}
	var err error
	if uc.auth, err = b.NewAuthUseCase(p, rs.Users); err != nil {
		return nil, fmt.Errorf("creating auth use case: %w", err)
	}
	if uc.users, err = b.NewUsersUseCase(p, rs.Users, g); err != nil {
		return nil, fmt.Errorf("creating users use case: %w", err)
	}
	if uc.brands, err = b.NewBrandsUseCase(p, rs.Brands, g); err != nil {
		return nil, fmt.Errorf("creating brands use case: %w", err)
	}
	if uc.cars, err = b.NewCarsUseCase(p, rs.Cars, g); err != nil {
		return nil, fmt.Errorf("creating cars use case: %w", err)
	}
	return uc, nil
}

func (app *UseCase) AuthUseCase() *authuc.UseCase {
	return app.auth
}

func (app *UseCase) UsersUseCase() *usersuc.UseCase {
	return app.users
}

func (app *UseCase) BrandsUseCase() *brandsuc.UseCase {
	return app.brands
}

func (app *UseCase) CarsUseCase() *carsuc.UseCase {
	return app.cars
}

// Health reports whether a database connection can be acquired.
func (app *UseCase) Health(ctx context.Context) error {
	return app.pool.Conn(ctx, func(context.Context, repo.Conn) error {
		return nil
	})
}
