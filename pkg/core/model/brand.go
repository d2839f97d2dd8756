// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "time"

// Brand models a car manufacturer.
type Brand struct {
	ID          int64
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BrandPatch lists the brand fields which may be updated.
type BrandPatch struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// Apply copies the non-nil fields of p into b.
func (p BrandPatch) Apply(b *Brand) {
	setIf(&b.Name, p.Name)
	setIf(&b.IsActive, p.IsActive)
	if p.Description != nil {
		d := *p.Description
		b.Description = &d
	}
}

// BrandFilter narrows down a brands listing.
type BrandFilter struct {
	Page
	IsActive *bool
}
