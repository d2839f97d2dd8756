// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "time"

// TokenTypeBearer is the only token type which is issued.
const TokenTypeBearer = "bearer"

// Token is an issued access token. It is never persisted.
type Token struct {
	Access    string    // signed and encoded token string
	Type      string    // always TokenTypeBearer
	ID        string    // unique token id, used for revocation
	ExpiresAt time.Time // instant after which Access is not valid
}

// Claims are the verified contents of a token.
type Claims struct {
	Subject   int64 // user id
	ID        string
	ExpiresAt time.Time
}

// Identity is the acting user of an authenticated request.
type Identity struct {
	UserID  int64
	TokenID string
	Expires time.Time
}
