// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package authuc

import (
	"errors"
	"time"

	"github.com/momeni/car-api/pkg/core/token"
)

// Option is a functional option for the authentication use case.
type Option func(uc *UseCase) error

// WithDenylist option enables the revocation of tokens using the d
// denylist. Revoked tokens are rejected by Authenticate and Refresh.
func WithDenylist(d token.Denylist) Option {
	return func(uc *UseCase) error {
		if d == nil {
			return errors.New("denylist is nil")
		}
		if uc.denylist != nil {
			return errors.New("denylist is already configured")
		}
		uc.denylist = d
		return nil
	}
}

// WithClock option replaces the time.Now function which provides the
// current time for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}
