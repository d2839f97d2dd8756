// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package passwd exports the expected interface for one-way hashing of
// user passwords. For the corresponding implementation, check the
// adapter layer (e.g., pkg/adapter/hash/argon2id).
package passwd

// Hasher computes and verifies password digests.
//
// Implementations must use a salted and memory-hard key derivation
// function. Two Hash calls for the same password must produce two
// distinct digests (because of their random salts) which both verify
// successfully. A digest must embed everything which is needed for its
// verification (salt and cost parameters), so digests which are made
// with older parameters keep working after the parameters change.
//
// Hasher instances hold no mutable state and may be used concurrently.
type Hasher interface {
	// Hash returns the encoded digest of the plaintext password.
	Hash(password string) (string, error)

	// Verify reports whether password matches the encoded digest.
	// A malformed digest is reported as a mismatch.
	Verify(password, digest string) bool
}
