// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersuc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the users use case.
type Option func(uc *UseCase) error

// WithListLimits option configures the default and maximum number of
// users which may be returned by one List call.
func WithListLimits(defaultLimit, maxLimit int) Option {
	return func(uc *UseCase) error {
		if maxLimit <= 0 || defaultLimit <= 0 || defaultLimit > maxLimit {
			return fmt.Errorf(
				"bad list limits: default=%d, max=%d",
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
