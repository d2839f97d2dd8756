// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Price is a non-floating decimal amount with two fraction digits,
// kept as an integral number of cents.
type Price int64

// MaxPrice is the greatest price which fits the numeric(12, 2) price
// column of cars, i.e., 9999999999.99.
const MaxPrice Price = 999999999999

// ErrMalformedPrice indicates that a string is not a decimal number
// with at most two fraction digits.
var ErrMalformedPrice = errors.New("malformed price")

// ParsePrice parses strings like "120", "120.5", or "120.50".
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" || len(frac) > 2 || !digits(whole) || !digits(frac) {
		return 0, ErrMalformedPrice
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w > (1<<62)/100 {
		return 0, ErrMalformedPrice
	}
	for len(frac) < 2 {
		frac += "0"
	}
	f, _ := strconv.ParseInt(frac, 10, 64)
	p := Price(w*100 + f)
	if neg {
		p = -p
	}
	return p, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String formats p with exactly two fraction digits.
func (p Price) String() string {
	sign := ""
	c := int64(p)
	if c < 0 {
		sign, c = "-", -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// MarshalText implements encoding.TextMarshaler, so prices are
// serialized as decimal strings and keep their exact value.
func (p Price) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Price) UnmarshalText(text []byte) error {
	v, err := ParsePrice(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
