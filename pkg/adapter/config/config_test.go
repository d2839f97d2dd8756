// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/momeni/car-api/pkg/adapter/config"
	"github.com/momeni/car-api/pkg/core/cerr"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `versions:
  config: %s
database:
  host: 127.0.0.1
  port: 5433
  name: carapi
  pass-dir: /tmp/carapi
auth:
  secret: 0123456789abcdef0123456789abcdef
  token-ttl: 15m
  argon2:
    memory: 1024
    parallelism: 1
`

func write(t *testing.T, version string) string {
	path := filepath.Join(t.TempDir(), "carapi.yaml")
	data := []byte(fmt.Sprintf(sample, version))
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoad(t *testing.T) {
	c, err := config.Load(write(t, "1.0.0"))
	require.NoError(t, err)
	assert.Equal(t, 5433, c.Database.Port)
	assert.Equal(t, "15m0s", c.Auth.TokenTTL.LogValue().String())
}

func TestLoadMismatchingVersion(t *testing.T) {
	_, err := config.Load(write(t, "2.0.0"))
	var msve *cerr.MismatchingSemVerError
	require.ErrorAs(t, err, &msve)
	assert.Equal(t, model.SemVer{1, 0, 0}, msve[0])
	assert.Equal(t, model.SemVer{2, 0, 0}, msve[1])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nothing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseMalformedVersion(t *testing.T) {
	_, err := config.Parse([]byte("versions:\n  config: one\n"))
	assert.Error(t, err)
}
