// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"log/slog"
)

// Err returns the "err" attr of the err error. A nil err is logged
// as the constant "no-error" value.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("err", "no-error")
	}
	return slog.String("err", err.Error())
}

// EntityID returns an attr with the "<entity>_id" key, such as the
// car_id or user_id, for the id of a stored record.
func EntityID(entity string, id int64) slog.Attr {
	return slog.Int64(entity+"_id", id)
}

// RequestID returns the "request_id" attr. It is attached to request
// contexts, so all records of a request may be correlated.
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}
