// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fake provides in-memory implementations of the repo package
// interfaces for unit tests of the use cases and the REST resources.
// A DB keeps users, brands, and cars in maps. Transactions are
// serialized and a failed transaction restores the DB snapshot which
// was taken when it began.
package fake

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/momeni/car-api/pkg/core/repo"
)

// ErrRawSQL is returned by the Exec methods, because the
// in-memory DB does not parse SQL statements.
var ErrRawSQL = errors.New("raw SQL is not supported by the fake DB")

type state struct {
	users  map[int64]userRow
	brands map[int64]brandRow
	cars   map[int64]carRow
	nextID int64
}

func (s *state) clone() state {
	c := state{
		users:  make(map[int64]userRow, len(s.users)),
		brands: make(map[int64]brandRow, len(s.brands)),
		cars:   make(map[int64]carRow, len(s.cars)),
		nextID: s.nextID,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.brands {
		c.brands[k] = v
	}
	for k, v := range s.cars {
		c.cars[k] = v
	}
	return c
}

// DB is an in-memory database. Its zero value is not usable, use the
// New function instead.
type DB struct {
	txMu sync.Mutex   // serializes transactions
	mu   sync.RWMutex // protects the following fields
	st   state
	err  error
	now  func() time.Time
}

// New creates an empty DB.
func New() *DB {
	return &DB{
		st: state{
			users:  map[int64]userRow{},
			brands: map[int64]brandRow{},
			cars:   map[int64]carRow{},
		},
		now: time.Now,
	}
}

// Fail makes all subsequent repository queries fail with err until
// Fail is called again with a nil error.
func (db *DB) Fail(err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.err = err
}

// SetNow replaces the clock which sets the records timestamps.
func (db *DB) SetNow(now func() time.Time) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.now = now
}

func (db *DB) read(f func(*state) error) error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.err != nil {
		return db.err
	}
	return f(&db.st)
}

func (db *DB) write(f func(*state, time.Time) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.err != nil {
		return db.err
	}
	return f(&db.st, db.now().UTC())
}

// Pool returns a repo.Pool which lends connections of db.
func (db *DB) Pool() *Pool {
	return &Pool{db: db}
}

// Pool implements the repo.Pool interface.
type Pool struct {
	db     *DB
	closed bool
}

// Conn calls handler with a new connection.
func (p *Pool) Conn(ctx context.Context, handler repo.ConnHandler) error {
	if p.closed {
		return errors.New("pool is closed")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return handler(ctx, &Conn{db: p.db})
}

func (p *Pool) Close() error {
	p.closed = true
	return nil
}

// Conn implements the repo.Conn interface.
type Conn struct {
	db *DB
}

// Tx runs handler in a transaction. Returned errors and panics roll
// the transaction back, restoring the DB contents.
func (c *Conn) Tx(ctx context.Context, handler repo.TxHandler) (err error) {
	c.db.txMu.Lock()
	defer c.db.txMu.Unlock()
	c.db.mu.RLock()
	snapshot := c.db.st.clone()
	c.db.mu.RUnlock()
	defer func() {
		r := recover()
		if r == nil && err == nil {
			return
		}
		c.db.mu.Lock()
		c.db.st = snapshot
		c.db.mu.Unlock()
		if r != nil {
			panic(r)
		}
	}()
	return handler(ctx, &Tx{db: c.db})
}

func (c *Conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

func (c *Conn) IsConn() {
}

// Tx implements the repo.Tx interface.
type Tx struct {
	db *DB
}

func (tx *Tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

func (tx *Tx) IsTx() {
}

func dbOf(q any) *DB {
	switch q := q.(type) {
	case *Conn:
		return q.db
	case *Tx:
		return q.db
	default:
		panic("fake repositories need fake connections")
	}
}

func page[T any](items []T, p int, limit int) []T {
	if p >= len(items) {
		return []T{}
	}
	items = items[p:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
