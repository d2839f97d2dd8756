// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram

import (
	"encoding/base64"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadArgs(t *testing.T) {
	_, err := New("md5", MinIterations)
	assert.Error(t, err)
	_, err = New("scram-sha-256", 100)
	assert.Error(t, err)
}

func TestHashFormat(t *testing.T) {
	m, err := New("scram-sha-256", MinIterations)
	require.NoError(t, err)
	h1, err := m.Hash("pencil")
	require.NoError(t, err)
	h2, err := m.Hash("pencil")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "salts must be random")
	b64 := `[A-Za-z0-9+/]+=*`
	re := regexp.MustCompile(
		`^SCRAM-SHA-256\$4096:` + b64 + `\$` + b64 + `:` + b64 + `$`,
	)
	assert.Regexp(t, re, h1)

	_, err = m.Hash("")
	assert.Error(t, err)
}

func TestHashIsDeterministicForSalt(t *testing.T) {
	m, err := New("scram-sha-1", MinIterations)
	require.NoError(t, err)
	salt, err := base64.StdEncoding.DecodeString("QSXCR+Q6sek8bf92")
	require.NoError(t, err)
	h1, err := m.hashWithSalt("pencil", salt)
	require.NoError(t, err)
	h2, err := m.hashWithSalt("pencil", salt)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Contains(t, h1, "SCRAM-SHA-1$4096:QSXCR+Q6sek8bf92$")
}
