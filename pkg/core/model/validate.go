// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"net/mail"
	"unicode/utf8"
)

// Field length and value bounds (inclusive).
const (
	MinUsernameLen = 3
	MaxUsernameLen = 50
	MaxEmailLen    = 100
	MinPasswordLen = 6
	MaxPasswordLen = 128

	MinBrandNameLen = 2
	MaxBrandNameLen = 50

	MinCarModelLen = 2
	MaxCarModelLen = 100
	MinColorLen    = 2
	MaxColorLen    = 30
	MinPlateLen    = 7
	MaxPlateLen    = 10
	MinYear        = 1900
	MaxYear        = 2030
)

// Violation describes why the value of a field is not acceptable.
type Violation struct {
	Field   string
	Message string
}

type checker []Violation

func (c *checker) length(field, s string, minLen, maxLen int) {
	n := utf8.RuneCountInString(s)
	if n < minLen || n > maxLen {
		*c = append(*c, Violation{field, fmt.Sprintf(
			"length must be in [%d, %d] range", minLen, maxLen,
		)})
	}
}

func (c *checker) between(field string, v, minV, maxV int) {
	if v < minV || v > maxV {
		*c = append(*c, Violation{field, fmt.Sprintf(
			"must be in [%d, %d] range", minV, maxV,
		)})
	}
}

func (c *checker) add(field, msg string) {
	*c = append(*c, Violation{field, msg})
}

// Validate reports the invalid fields of u, ignoring its password hash.
func (u *User) Validate() []Violation {
	var c checker
	c.length("username", u.Username, MinUsernameLen, MaxUsernameLen)
	if utf8.RuneCountInString(u.Email) > MaxEmailLen {
		c.add("email", fmt.Sprintf("length must be at most %d", MaxEmailLen))
	} else if a, err := mail.ParseAddress(u.Email); err != nil || a.Address != u.Email {
		c.add("email", "must be a valid email address")
	}
	return c
}

// ValidatePassword reports a plaintext password with a bad length.
func ValidatePassword(password string) []Violation {
	var c checker
	c.length("password", password, MinPasswordLen, MaxPasswordLen)
	return c
}

// Validate reports the invalid fields of b.
func (b *Brand) Validate() []Violation {
	var c checker
	c.length("name", b.Name, MinBrandNameLen, MaxBrandNameLen)
	return c
}

// Validate reports the invalid fields of car. The plate is expected
// to be normalized already.
func (car *Car) Validate() []Violation {
	var c checker
	c.length("model", car.Model, MinCarModelLen, MaxCarModelLen)
	c.between("factory_year", car.FactoryYear, MinYear, MaxYear)
	c.between("model_year", car.ModelYear, MinYear, MaxYear)
	c.length("color", car.Color, MinColorLen, MaxColorLen)
	c.length("plate", car.Plate, MinPlateLen, MaxPlateLen)
	if err := car.FuelType.Validate(); err != nil {
		c.add("fuel_type", err.Error())
	}
	if err := car.Transmission.Validate(); err != nil {
		c.add("transmission", err.Error())
	}
	switch {
	case car.Price <= 0:
		c.add("price", "must be positive")
	case car.Price > MaxPrice:
		c.add("price", "must be at most "+MaxPrice.String())
	}
	if car.BrandID <= 0 {
		c.add("brand_id", "must be positive")
	}
	if car.OwnerID <= 0 {
		c.add("owner_id", "must be positive")
	}
	return c
}
