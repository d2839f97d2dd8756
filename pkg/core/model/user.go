// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "time"

// User is an identity record. The PasswordHash holds a one-way digest
// of the user password and must never be reported to clients.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch lists the user fields which may be updated by a profile
// update operation. The Password field carries a plaintext password
// which is hashed by the use cases layer before being stored.
type UserPatch struct {
	Username *string
	Email    *string
	Password *string
}

// UserFilter narrows down a users listing. The Search term matches
// both of the username and email columns.
type UserFilter struct {
	Page
}
