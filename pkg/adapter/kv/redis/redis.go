// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package redis implements the token.Denylist and kv.Limiter
// interfaces on top of a redis server, using the
// github.com/redis/go-redis/v9 client.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultPrefix is used for keys when no prefix is configured.
const DefaultPrefix = "carapi"

// NewClient connects to the addr redis server and pings it.
func NewClient(
	ctx context.Context, addr, password string, db int,
) (*goredis.Client, error) {
	c := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return nil, fmt.Errorf("pinging redis at %q: %w", addr, err)
	}
	return c, nil
}

// Denylist stores revoked token ids as keys which expire together
// with their tokens.
type Denylist struct {
	client *goredis.Client
	prefix string
}

// NewDenylist creates a Denylist which keeps its keys under prefix.
func NewDenylist(c *goredis.Client, prefix string) *Denylist {
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		prefix = DefaultPrefix
	}
	return &Denylist{client: c, prefix: prefix}
}

func (d *Denylist) key(id string) string {
	return d.prefix + ":revoked:" + id
}

// Revoke records id as revoked for ttl.
func (d *Denylist) Revoke(
	ctx context.Context, id string, ttl time.Duration,
) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.key(id), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoking token %q: %w", id, err)
	}
	return nil
}

// IsRevoked reports whether id was revoked and has not expired yet.
func (d *Denylist) IsRevoked(ctx context.Context, id string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("checking token %q: %w", id, err)
	}
	return n > 0, nil
}

var fixedWindowScript = goredis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// Limiter counts attempts per key in fixed time windows. All server
// instances which share the redis server share the counters too.
type Limiter struct {
	client *goredis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewLimiter allows limit attempts per window for each key.
func NewLimiter(
	c *goredis.Client, prefix string, limit int, window time.Duration,
) (*Limiter, error) {
	if limit <= 0 || window < time.Millisecond {
		return nil, errors.New("limit and window must be positive")
	}
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		prefix = DefaultPrefix
	}
	return &Limiter{
		client: c,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}, nil
}

// Allow returns true when key is within its quota. It fails closed,
// so redis failures deny the attempt.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if key = strings.TrimSpace(key); key == "" {
		key = "unknown"
	}
	windowMs := l.window.Milliseconds()
	slot := l.now().UnixMilli() / windowMs
	k := fmt.Sprintf("%s:ratelimit:%s:%d", l.prefix, key, slot)
	n, err := fixedWindowScript.Run(
		ctx, l.client, []string{k}, windowMs,
	).Int64()
	if err != nil {
		return false
	}
	return n <= int64(l.limit)
}
