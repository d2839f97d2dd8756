// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"

	"github.com/momeni/car-api/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer is the type constraint of the generic query functions of the
// repository packages. It is satisfied by a *Conn or a *Tx.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer

	// GORM returns the embedded *gorm.DB for the ctx context.
	GORM(ctx context.Context) *gorm.DB
}

// Exists runs the `SELECT EXISTS(SELECT 1 FROM table WHERE where)`
// statement and returns its result. The table name and where condition
// must not contain user inputs, which should be passed as args instead.
func Exists[Q Queryer](
	ctx context.Context, q Q, table, where string, args ...any,
) (bool, error) {
	var found bool
	err := q.GORM(ctx).Raw(
		"SELECT EXISTS(SELECT 1 FROM "+table+" WHERE "+where+")", args...,
	).Scan(&found).Error
	if err != nil {
		return false, fmt.Errorf("checking existence in %s: %w", table, err)
	}
	return found, nil
}
