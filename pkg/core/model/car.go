// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// Models are plain structs. The adapter layer keeps its own tagged
// structs (e.g., the gUser struct in the postgres usersrp package) and
// converts them to these models, so ORM details do not leak into the
// use cases layer.
package model

import (
	"strings"
	"time"
)

// Car models a vehicle record. A car always refers to one Brand and
// one owning User by their IDs. When a car is reported to clients,
// its Brand and Owner fields are filled too.
type Car struct {
	ID           int64
	Model        string
	FactoryYear  int
	ModelYear    int
	Color        string
	Plate        string // upper-cased
	FuelType     FuelType
	Transmission Transmission
	Price        Price
	Description  *string
	IsAvailable  bool
	BrandID      int64
	OwnerID      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Brand *Brand // nil unless loaded alongside the car
	Owner *User  // nil unless loaded alongside the car
}

// CarPatch lists the car fields which may be updated. A nil field
// keeps its current value.
type CarPatch struct {
	Model        *string
	FactoryYear  *int
	ModelYear    *int
	Color        *string
	Plate        *string
	FuelType     *FuelType
	Transmission *Transmission
	Price        *Price
	Description  *string
	IsAvailable  *bool
	BrandID      *int64
	OwnerID      *int64
}

// Apply copies the non-nil fields of p into c.
func (p CarPatch) Apply(c *Car) {
	setIf(&c.Model, p.Model)
	setIf(&c.FactoryYear, p.FactoryYear)
	setIf(&c.ModelYear, p.ModelYear)
	setIf(&c.Color, p.Color)
	setIf(&c.Plate, p.Plate)
	setIf(&c.FuelType, p.FuelType)
	setIf(&c.Transmission, p.Transmission)
	setIf(&c.Price, p.Price)
	setIf(&c.IsAvailable, p.IsAvailable)
	setIf(&c.BrandID, p.BrandID)
	setIf(&c.OwnerID, p.OwnerID)
	if p.Description != nil {
		d := *p.Description
		c.Description = &d
	}
}

// CarFilter narrows down a cars listing. Nil fields are ignored.
type CarFilter struct {
	Page
	BrandID      *int64
	FuelType     *FuelType
	Transmission *Transmission
	IsAvailable  *bool
	MinPrice     *Price
	MaxPrice     *Price
}

// NormalizePlate returns the canonical (trimmed and upper-cased) form
// of a plate, as it is stored and compared.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
