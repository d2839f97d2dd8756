// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Role is a database role name.
type Role string

const (
	// AdminRole is an administrator (super user) role which is only
	// used for creation of the schema and the normal role, granting it
	// the relevant privileges, and renewing passwords.
	AdminRole Role = "admin"

	// NormalRole is the unprivileged role which owns the tables of
	// the application schema, runs the schema migrations, and serves
	// all requests of the web server.
	NormalRole Role = "carapi"
)
