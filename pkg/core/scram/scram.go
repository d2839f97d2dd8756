// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the expected interface for hashing of the
// database role passwords in the Salted Challenge Response
// Authentication Mechanism (SCRAM) stored format. The implementation
// lives in the adapter layer.
//
// The hashed string can be passed to a CREATE or ALTER ROLE statement,
// so the plaintext password is never sent to the DBMS (and so it may
// not be leaked into its statement logs). These passwords belong to
// the database roles and are unrelated to the application users, whose
// passwords are handled by the passwd package.
package scram

// Hasher computes SCRAM stored-format hashes with a fixed underlying
// hash function (e.g., SHA256).
type Hasher interface {
	// Hash returns a string following the format
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	//
	// for the non-empty pass password and a random salt. The iteration
	// count is fixed by the Hasher instance.
	Hash(pass string) (string, error)
}
