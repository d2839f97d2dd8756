// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/momeni/car-api/pkg/core/log"
	"github.com/stretchr/testify/assert"
)

func TestWithAttachesAttrs(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	ctx := log.With(context.Background(), log.RequestID("r1"))
	ctx = log.With(ctx, log.EntityID("user", 7))
	log.Info(ctx, "hello", log.Err(errors.New("boom")))
	log.Debug(ctx, "hidden")

	out := buf.String()
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "request_id=r1")
	assert.Contains(t, out, "user_id=7")
	assert.Contains(t, out, "err=boom")
	assert.NotContains(t, out, "hidden")
	assert.Len(t, log.Attrs(ctx), 2)
	assert.Empty(t, log.Attrs(context.Background()))
}

func TestErrNil(t *testing.T) {
	assert.Equal(t, "no-error", log.Err(nil).Value.String())
}

func TestEntityIDKey(t *testing.T) {
	a := log.EntityID("car", 12)
	assert.Equal(t, "car_id", a.Key)
	assert.Equal(t, int64(12), a.Value.Int64())
}
