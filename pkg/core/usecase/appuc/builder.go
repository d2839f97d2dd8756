// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package appuc

import (
	"github.com/momeni/car-api/pkg/core/guard"
	"github.com/momeni/car-api/pkg/core/repo"
	"github.com/momeni/car-api/pkg/core/usecase/authuc"
	"github.com/momeni/car-api/pkg/core/usecase/brandsuc"
	"github.com/momeni/car-api/pkg/core/usecase/carsuc"
	"github.com/momeni/car-api/pkg/core/usecase/usersuc"
)

// Builder creates the use cases with their configured options, such
// as the password hasher parameters, the tokens secret and lifetime,
// the tokens denylist, and the list limits. The configuration layer
// implements this interface.
type Builder interface {
	// NewAuthUseCase creates a new authuc UseCase object having the
	// provided database connection pool and users repository.
	NewAuthUseCase(p repo.Pool, r repo.Users) (*authuc.UseCase, error)

	// NewUsersUseCase creates a new usersuc UseCase object. It must
	// use the same password hasher which is used by the auth use case.
	NewUsersUseCase(
		p repo.Pool, r repo.Users, g *guard.Guard,
	) (*usersuc.UseCase, error)

	// NewBrandsUseCase creates a new brandsuc UseCase object.
	NewBrandsUseCase(
		p repo.Pool, r repo.Brands, g *guard.Guard,
	) (*brandsuc.UseCase, error)

	// NewCarsUseCase creates a new carsuc UseCase object.
	NewCarsUseCase(
		p repo.Pool, r repo.Cars, g *guard.Guard,
	) (*carsuc.UseCase, error)
}
