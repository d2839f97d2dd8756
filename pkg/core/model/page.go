// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "fmt"

// Page describes a window of a listing, plus an optional free text
// search term. The Search is matched case-insensitively against the
// listing specific columns and is ignored when empty.
type Page struct {
	Offset int
	Limit  int
	Search string
}

// Listing limits which are used unless the use cases are configured
// otherwise.
const (
	DefaultPageLimit = 100
	MaxPageLimit     = 100
)

// Normalize replaces a zero Limit with defLimit and reports an offset
// which is negative or a limit which is not in the [1, maxLimit] range.
func (p *Page) Normalize(defLimit, maxLimit int) []Violation {
	var vs []Violation
	if p.Offset < 0 {
		vs = append(vs, Violation{"offset", "must be non-negative"})
	}
	if p.Limit == 0 {
		p.Limit = defLimit
	}
	if p.Limit < 1 || p.Limit > maxLimit {
		vs = append(vs, Violation{
			"limit", fmt.Sprintf("must be in [1, %d] range", maxLimit),
		})
	}
	return vs
}
