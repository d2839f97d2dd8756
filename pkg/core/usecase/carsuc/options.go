// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsuc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the cars use case.
type Option func(uc *UseCase) error

// WithListLimits option configures a cars UseCase instance in order
// to return defaultLimit cars by each List call, unless a limit is
// specified explicitly, and reject limits which exceed maxLimit.
// This option may be passed to the New() function.
func WithListLimits(defaultLimit, maxLimit int) Option {
	return func(uc *UseCase) error {
		if maxLimit <= 0 {
			return fmt.Errorf("max limit (%d) is not positive", maxLimit)
		}
		if defaultLimit <= 0 || defaultLimit > maxLimit {
			return fmt.Errorf(
				"default limit (%d) is not in [1, %d] range",
				defaultLimit, maxLimit,
			)
		}
		if uc.maxLimit != 0 {
			return errors.New("list limits are already configured")
		}
		uc.defaultLimit, uc.maxLimit = defaultLimit, maxLimit
		return nil
	}
}
