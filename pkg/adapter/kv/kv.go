// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package kv collects the key-value backed adapters, namely the token
// denylist and the login attempts limiter. The redis subpackage shares
// their state among all server instances, while the memory subpackage
// keeps it in the current process.
package kv

import "context"

// Limiter decides if one more attempt may be made for a key (e.g.,
// the client IP address) in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}
