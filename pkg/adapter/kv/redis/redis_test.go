// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/momeni/car-api/pkg/adapter/kv"
	"github.com/momeni/car-api/pkg/adapter/kv/redis"
	"github.com/momeni/car-api/pkg/core/token"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ token.Denylist = (*redis.Denylist)(nil)
	_ kv.Limiter     = (*redis.Limiter)(nil)
)

func newClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	mr := miniredis.RunT(t)
	c, err := redis.NewClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return mr, c
}

func TestNewClientFailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err := redis.NewClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}

func TestDenylist(t *testing.T) {
	mr, c := newClient(t)
	ctx := context.Background()
	d := redis.NewDenylist(c, "test")

	revoked, err := d.IsRevoked(ctx, "id-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "id-1", time.Minute))
	require.NoError(t, d.Revoke(ctx, "id-2", 0), "zero ttl is ignored")
	assert.True(t, mr.Exists("test:revoked:id-1"))
	assert.False(t, mr.Exists("test:revoked:id-2"))

	revoked, err = d.IsRevoked(ctx, "id-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(time.Minute)
	revoked, err = d.IsRevoked(ctx, "id-1")
	require.NoError(t, err)
	assert.False(t, revoked, "revocation must expire with the token")
}

func TestDenylistReportsFailures(t *testing.T) {
	mr, c := newClient(t)
	d := redis.NewDenylist(c, "")
	mr.Close()
	_, err := d.IsRevoked(context.Background(), "id-1")
	assert.Error(t, err)
	assert.Error(t, d.Revoke(context.Background(), "id-1", time.Minute))
}

func TestLimiter(t *testing.T) {
	_, c := newClient(t)
	ctx := context.Background()
	l, err := redis.NewLimiter(c, "test", 2, time.Hour)
	require.NoError(t, err)

	assert.True(t, l.Allow(ctx, "10.0.0.1"))
	assert.True(t, l.Allow(ctx, "10.0.0.1"))
	assert.False(t, l.Allow(ctx, "10.0.0.1"))
	assert.True(t, l.Allow(ctx, "10.0.0.2"), "keys are counted apart")
}

func TestLimiterFailsClosed(t *testing.T) {
	mr, c := newClient(t)
	l, err := redis.NewLimiter(c, "test", 5, time.Minute)
	require.NoError(t, err)
	mr.Close()
	assert.False(t, l.Allow(context.Background(), "10.0.0.1"))
}

func TestNewLimiterRejectsBadArgs(t *testing.T) {
	_, c := newClient(t)
	_, err := redis.NewLimiter(c, "test", 0, time.Minute)
	assert.Error(t, err)
	_, err = redis.NewLimiter(c, "test", 1, 0)
	assert.Error(t, err)
}
