// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package argon2id implements the pkg/core/passwd.Hasher interface
// using the argon2id memory-hard key derivation function from the
// golang.org/x/crypto/argon2 module. Digests are encoded in the PHC
// string format, for example:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<b64-salt>$<b64-key>
//
// where the base64 parts use the standard alphabet without padding.
package argon2id

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Params are the argon2id cost parameters.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32 // bytes
	KeyLength   uint32 // bytes
}

// DefaultParams follows the RFC 9106 second recommended option with
// a single pass over 64 MiB of memory.
var DefaultParams = Params{
	Memory:      64 * 1024,
	Iterations:  1,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

var errMalformed = errors.New("malformed argon2id digest")

// Hasher hashes passwords with its Params. Verification uses the
// parameters which are embedded in each digest instead.
type Hasher struct {
	p Params
}

// New validates p and returns a Hasher.
func New(p Params) (*Hasher, error) {
	switch {
	case p.Memory < 8*uint32(p.Parallelism):
		return nil, fmt.Errorf(
			"memory (%d KiB) is less than 8*parallelism", p.Memory,
		)
	case p.Iterations == 0:
		return nil, errors.New("iterations must be positive")
	case p.Parallelism == 0:
		return nil, errors.New("parallelism must be positive")
	case p.SaltLength < 8:
		return nil, fmt.Errorf("salt length (%d) is too short", p.SaltLength)
	case p.KeyLength < 16:
		return nil, fmt.Errorf("key length (%d) is too short", p.KeyLength)
	}
	return &Hasher{p: p}, nil
}

// Hash derives a key from password and a fresh random salt.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("creating random salt: %w", err)
	}
	key := argon2.IDKey(
		[]byte(password), salt,
		h.p.Iterations, h.p.Memory, h.p.Parallelism, h.p.KeyLength,
	)
	enc := base64.RawStdEncoding
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.p.Memory, h.p.Iterations, h.p.Parallelism,
		enc.EncodeToString(salt), enc.EncodeToString(key),
	), nil
}

// Verify re-derives the key of password using the salt and parameters
// of digest and compares it in constant time. Malformed digests never
// match.
func (h *Hasher) Verify(password, digest string) bool {
	p, salt, key, err := decode(digest)
	if err != nil {
		return false
	}
	other := argon2.IDKey(
		[]byte(password), salt,
		p.Iterations, p.Memory, p.Parallelism, p.KeyLength,
	)
	return subtle.ConstantTimeCompare(key, other) == 1
}

func decode(digest string) (p Params, salt, key []byte, err error) {
	parts := strings.Split(digest, "$")
	// ["", "argon2id", "v=19", "m=..,t=..,p=..", salt, key]
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, errMalformed
	}
	var v int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &v); err != nil {
		return p, nil, nil, errMalformed
	}
	if v != argon2.Version {
		return p, nil, nil, fmt.Errorf("unsupported version: %d", v)
	}
	_, err = fmt.Sscanf(
		parts[3], "m=%d,t=%d,p=%d",
		&p.Memory, &p.Iterations, &p.Parallelism,
	)
	if err != nil {
		return p, nil, nil, errMalformed
	}
	// bound the costs, so a forged digest may not exhaust resources
	switch {
	case p.Memory == 0 || p.Memory > 4*1024*1024,
		p.Iterations == 0 || p.Iterations > 64,
		p.Parallelism == 0:
		return p, nil, nil, errMalformed
	}
	enc := base64.RawStdEncoding
	if salt, err = enc.DecodeString(parts[4]); err != nil || len(salt) == 0 {
		return p, nil, nil, errMalformed
	}
	if key, err = enc.DecodeString(parts[5]); err != nil || len(key) == 0 {
		return p, nil, nil, errMalformed
	}
	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(key))
	return p, salt, key, nil
}
