// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// FuelType specifies the fuel which a car consumes. Although this enum
// is numeric, it is (de)serialized as a string in the adapter layer
// for readability.
type FuelType int

// Valid values for the FuelType enum.
const (
	FuelTypeInvalid FuelType = iota // zero value is invalid

	FuelTypeGasoline
	FuelTypeEthanol
	FuelTypeFlex
	FuelTypeDiesel
	FuelTypeElectric
	FuelTypeHybrid
)

var fuelTypeNames = [...]string{
	FuelTypeGasoline: "gasoline",
	FuelTypeEthanol:  "ethanol",
	FuelTypeFlex:     "flex",
	FuelTypeDiesel:   "diesel",
	FuelTypeElectric: "electric",
	FuelTypeHybrid:   "hybrid",
}

// ErrUnknownFuelType indicates that a given string may not be parsed
// as a known fuel type. The invalid string itself is not included
// because the caller of ParseFuelType already knows about it.
var ErrUnknownFuelType = errors.New("unknown fuel type")

// FuelTypeError indicates an invalid numeric fuel type.
type FuelTypeError int

// Error implements the error interface.
func (e FuelTypeError) Error() string {
	return fmt.Sprintf("invalid fuel type: %d", e)
}

// Validate returns nil if f is a known fuel type, otherwise, an
// instance of the FuelTypeError will be returned.
func (f FuelType) Validate() error {
	if f <= FuelTypeInvalid || f > FuelTypeHybrid {
		return FuelTypeError(f)
	}
	return nil
}

// String converts the FuelType enum to its string representation.
// Invalid fuel types cause a panic.
func (f FuelType) String() string {
	if err := f.Validate(); err != nil {
		panic(err)
	}
	return fuelTypeNames[f]
}

// ParseFuelType parses the given string and returns a FuelType.
// For invalid strings, FuelTypeInvalid and ErrUnknownFuelType will be
// returned.
func ParseFuelType(s string) (FuelType, error) {
	for f, name := range fuelTypeNames {
		if name != "" && name == s {
			return FuelType(f), nil
		}
	}
	return FuelTypeInvalid, ErrUnknownFuelType
}
