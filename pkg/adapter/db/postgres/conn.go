// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/car-api/pkg/core/log"
	"github.com/momeni/car-api/pkg/core/repo"
	"gorm.io/gorm"
)

// session is the common part of Conn and Tx. Both of them run their
// statements on a single physical connection, so a session must not
// be shared between goroutines.
type session struct {
	db *gorm.DB
}

// Exec runs the sql statement with args and returns the number of
// affected rows. Parameters may be written as $1, $2, etc. or as the
// ? and @name placeholders of GORM. Without args, sql may contain
// multiple semi-colon separated statements.
func (s session) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	res := s.db.WithContext(ctx).Exec(sql, args...)
	if err := res.Error; err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// GORM returns the underlying *gorm.DB in a session which uses ctx.
// The repository packages build their queries on it.
func (s session) GORM(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Conn represents a database connection which is leased from a Pool.
type Conn struct {
	session
}

// Tx begins a transaction and passes it to the handler. If handler
// returns an error or panics, the transaction is rolled back, and
// otherwise, it is committed. The handler errors are wrapped, so
// errors.Is and errors.As may still find the cerr.Error values which
// are returned by the use cases.
func (c *Conn) Tx(ctx context.Context, handler repo.TxHandler) (err error) {
	gtx := c.db.WithContext(ctx).Begin()
	if err = gtx.Error; err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		r := recover()
		if r == nil && err == nil {
			if err = gtx.Commit().Error; err != nil {
				err = fmt.Errorf("commit: %w", err)
			}
			return
		}
		if rbErr := gtx.Rollback().Error; rbErr != nil {
			log.Warn(ctx, "rollback failed", log.Err(rbErr))
		}
		if r != nil {
			err = fmt.Errorf("panicked: %v", r)
			log.Error(ctx, "tx handler panicked", slog.Any("panic", r))
			return
		}
		err = fmt.Errorf("handler: %w", err)
	}()
	return handler(ctx, &Tx{session{db: gtx}})
}

func (c *Conn) IsConn() {
}

// Tx represents a database transaction. All statements of a Tx run
// with the READ-COMMITTED isolation level, which is the PostgreSQL
// default, unless the transaction sets another level explicitly.
type Tx struct {
	session
}

func (tx *Tx) IsTx() {
}
