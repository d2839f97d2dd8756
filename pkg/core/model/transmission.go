// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// Transmission specifies the gearbox type of a car.
type Transmission int

// Valid values for the Transmission enum.
const (
	TransmissionInvalid Transmission = iota // zero value is invalid

	TransmissionManual
	TransmissionAutomatic
	TransmissionSemiAutomatic
	TransmissionCVT
)

// ErrUnknownTransmission indicates that a given string may not be
// parsed as a known transmission type.
var ErrUnknownTransmission = errors.New("unknown transmission")

// TransmissionError indicates an invalid numeric transmission.
type TransmissionError int

// Error implements the error interface.
func (e TransmissionError) Error() string {
	return fmt.Sprintf("invalid transmission: %d", e)
}

// Validate returns nil if t is a known transmission type.
func (t Transmission) Validate() error {
	switch t {
	case TransmissionManual, TransmissionAutomatic,
		TransmissionSemiAutomatic, TransmissionCVT:
		return nil
	default:
		return TransmissionError(t)
	}
}

// String converts the Transmission enum to a string. Invalid values
// cause a panic.
func (t Transmission) String() string {
	switch t {
	case TransmissionManual:
		return "manual"
	case TransmissionAutomatic:
		return "automatic"
	case TransmissionSemiAutomatic:
		return "semi_automatic"
	case TransmissionCVT:
		return "cvt"
	default:
		panic(TransmissionError(t))
	}
}

// ParseTransmission parses the given string and returns a Transmission.
// For invalid strings, TransmissionInvalid and ErrUnknownTransmission
// will be returned.
func ParseTransmission(s string) (Transmission, error) {
	switch s {
	case "manual":
		return TransmissionManual, nil
	case "automatic":
		return TransmissionAutomatic, nil
	case "semi_automatic":
		return TransmissionSemiAutomatic, nil
	case "cvt":
		return TransmissionCVT, nil
	default:
		return TransmissionInvalid, ErrUnknownTransmission
	}
}
