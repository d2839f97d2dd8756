// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package argon2id_test

import (
	"strings"
	"testing"

	"github.com/momeni/car-api/pkg/adapter/hash/argon2id"
	"github.com/momeni/car-api/pkg/core/passwd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ passwd.Hasher = (*argon2id.Hasher)(nil)

func newHasher(t *testing.T) *argon2id.Hasher {
	h, err := argon2id.New(argon2id.Params{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	require.NoError(t, err)
	return h
}

func TestHashAndVerify(t *testing.T) {
	h := newHasher(t)
	d1, err := h.Hash("secret12")
	require.NoError(t, err)
	d2, err := h.Hash("secret12")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(d1, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.NotEqual(t, d1, d2, "salts must differ")
	assert.True(t, h.Verify("secret12", d1))
	assert.True(t, h.Verify("secret12", d2))
	assert.False(t, h.Verify("secret13", d1))
	assert.False(t, h.Verify("", d1))
}

func TestVerifyUsesEmbeddedParams(t *testing.T) {
	d, err := newHasher(t).Hash("pw-123456")
	require.NoError(t, err)
	other, err := argon2id.New(argon2id.DefaultParams)
	require.NoError(t, err)
	assert.True(t, other.Verify("pw-123456", d))
}

func TestVerifyMalformed(t *testing.T) {
	h := newHasher(t)
	good, err := h.Hash("secret12")
	require.NoError(t, err)
	parts := strings.Split(good, "$")
	for name, digest := range map[string]string{
		"empty":       "",
		"plain":       "secret12",
		"bcrypt":      "$2a$10$abcdefghijklmnopqrstuu",
		"bad version": strings.Replace(good, "v=19", "v=16", 1),
		"bad params":  strings.Replace(good, "m=1024", "m=x", 1),
		"huge memory": strings.Replace(good, "m=1024", "m=99999999", 1),
		"zero iters":  strings.Replace(good, "t=1", "t=0", 1),
		"bad salt":    strings.Join([]string{"", parts[1], parts[2], parts[3], "!!", parts[5]}, "$"),
		"no key":      strings.Join(parts[:5], "$") + "$",
		"extra":       good + "$x",
	} {
		assert.NotPanics(t, func() {
			assert.False(t, h.Verify("secret12", digest), name)
		}, name)
	}
}

func TestNewRejectsWeakParams(t *testing.T) {
	for _, p := range []argon2id.Params{
		{Memory: 4, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32},
		{Memory: 1024, Iterations: 0, Parallelism: 1, SaltLength: 16, KeyLength: 32},
		{Memory: 1024, Iterations: 1, Parallelism: 0, SaltLength: 16, KeyLength: 32},
		{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 4, KeyLength: 32},
		{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 8},
	} {
		_, err := argon2id.New(p)
		assert.Error(t, err, "%+v", p)
	}
}
