// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memory implements the token.Denylist and kv.Limiter
// interfaces in the current process. It fits a single server instance.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Denylist keeps the revoked token ids with their expiration times.
// Expired entries are dropped lazily.
type Denylist struct {
	mu  sync.Mutex
	ids map[string]time.Time
	now func() time.Time
}

// NewDenylist creates an empty Denylist.
func NewDenylist() *Denylist {
	return &Denylist{ids: make(map[string]time.Time), now: time.Now}
}

// SetClock replaces the time source. It is useful in tests.
func (d *Denylist) SetClock(now func() time.Time) {
	d.mu.Lock()
	d.now = now
	d.mu.Unlock()
}

func (d *Denylist) Revoke(
	_ context.Context, id string, ttl time.Duration,
) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	for k, exp := range d.ids {
		if !now.Before(exp) {
			delete(d.ids, k)
		}
	}
	d.ids[id] = now.Add(ttl)
	return nil
}

func (d *Denylist) IsRevoked(_ context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.ids[id]
	if !ok {
		return false, nil
	}
	if !d.now().Before(exp) {
		delete(d.ids, id)
		return false, nil
	}
	return true, nil
}

// minSweep is the least number of keys which makes a Limiter look
// for its idle buckets.
const minSweep = 64

// Limiter keeps one token bucket per key, refilling perMinute tokens
// every minute with up to burst tokens. A full bucket behaves like a
// new one, so the full buckets are dropped lazily when the number of
// keys doubles.
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	sweepAt  int
	now      func() time.Time
}

// NewLimiter creates a Limiter. A zero burst defaults to perMinute.
func NewLimiter(perMinute, burst int) (*Limiter, error) {
	if perMinute <= 0 || burst < 0 {
		return nil, errors.New("perMinute must be positive")
	}
	if burst == 0 {
		burst = perMinute
	}
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perMinute) / 60,
		burst:    burst,
		sweepAt:  minSweep,
		now:      time.Now,
	}, nil
}

// SetClock replaces the time source. It is useful in tests.
func (l *Limiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	l.now = now
	l.mu.Unlock()
}

func (l *Limiter) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	rl, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= l.sweepAt {
			l.sweep(now)
		}
		rl = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = rl
	}
	return rl.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *Limiter) sweep(now time.Time) {
	for k, rl := range l.limiters {
		if rl.TokensAt(now) >= float64(l.burst) {
			delete(l.limiters, k)
		}
	}
	l.sweepAt = max(minSweep, 2*len(l.limiters))
}
