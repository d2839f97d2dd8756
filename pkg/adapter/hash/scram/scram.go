// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram presents an implementation of the SCRAM-SHA-256 and
// SCRAM-SHA-1 stored password formats, as accepted by the PostgreSQL
// CREATE/ALTER ROLE statements, relying on the github.com/xdg-go/scram
// module.
package scram

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/xdg-go/scram"
)

// MinIterations is the least accepted PBKDF2 iteration count.
const MinIterations = 4096

// Mechanism computes SCRAM hashes with a fixed underlying hash
// function and iteration count. It implements the
// github.com/momeni/car-api/pkg/core/scram.Hasher interface.
type Mechanism struct {
	hashGenerator scram.HashGeneratorFcn
	saltLen       int // bytes
	name          string
	iters         int
}

// New returns a Mechanism for the given database authentication method
// name, which may be "scram-sha-1" or "scram-sha-256".
func New(method string, iters int) (*Mechanism, error) {
	if iters < MinIterations {
		return nil, fmt.Errorf(
			"iters (%d) is less than %d", iters, MinIterations,
		)
	}
	m := &Mechanism{iters: iters}
	switch method {
	case "scram-sha-1":
		m.hashGenerator, m.saltLen, m.name = scram.SHA1, 20, "SCRAM-SHA-1"
	case "scram-sha-256":
		m.hashGenerator, m.saltLen, m.name = scram.SHA256, 32, "SCRAM-SHA-256"
	default:
		return nil, fmt.Errorf("unsupported SCRAM method: %q", method)
	}
	return m, nil
}

// Hash computes the stored-format hash of pass with a random salt.
// The password is normalized with SASLprep by the underlying client,
// so passwords which cannot be normalized are rejected.
func (m *Mechanism) Hash(pass string) (string, error) {
	if pass == "" {
		return "", errors.New("password must be non-empty")
	}
	salt := make([]byte, m.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("creating random salt: %w", err)
	}
	return m.hashWithSalt(pass, salt)
}

func (m *Mechanism) hashWithSalt(pass string, salt []byte) (string, error) {
	c, err := m.hashGenerator.NewClient("username", pass, "authzID")
	if err != nil {
		return "", fmt.Errorf("creating SCRAM client: %w", err)
	}
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt:  string(salt),
		Iters: m.iters,
	})
	return fmt.Sprintf(
		"%s$%d:%s$%s:%s",
		m.name,
		m.iters, base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(sc.StoredKey),
		base64.StdEncoding.EncodeToString(sc.ServerKey),
	), nil
}
