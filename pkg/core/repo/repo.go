// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo specifies the repository interfaces which the use cases
// layer expects. A Pool lends connections, a Conn may start a Tx, and
// both of Conn and Tx are Queryer instances. Each repository (such as
// Users) takes a Conn or a Tx and returns a queryer object which runs
// the repository specific queries on it. Reading methods are available
// on both connections and transactions, while mutating methods are
// only offered in a transaction, so every write runs atomically with
// its preceding integrity checks.
package repo

import (
	"context"
	"errors"
)

// ErrNotFound is returned by queries which expected to find exactly
// one row, but found none.
var ErrNotFound = errors.New("record not found")

// ConnHandler is a callback which receives a connection from a Pool.
// The connection is released when the handler returns.
type ConnHandler func(context.Context, Conn) error

// TxHandler is a callback which runs in a transaction. A non-nil
// returned error (or a panic) rolls back the transaction, otherwise,
// it will be committed.
type TxHandler func(context.Context, Tx) error

// Pool is a database connections pool.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
	Close() error
}

// Conn is a database connection which is leased from a Pool.
type Conn interface {
	Queryer
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn method prevents a non-Conn object (such as a Tx) to
	// mistakenly implement the Conn interface.
	IsConn()
}

// Tx is a database transaction. It is unsafe to use it concurrently.
type Tx interface {
	Queryer

	// IsTx method prevents a non-Tx object (such as a Conn) to
	// mistakenly implement the Tx interface.
	IsTx()
}

// Queryer runs raw SQL statements. Repositories should be preferred,
// but raw statements are useful for schema management and tests.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
}
