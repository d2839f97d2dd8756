// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine and provides the middlewares
// which are shared by all routes, such as the access logger, panic
// recovery, and the request id injection.
package gin

import (
	"log/slog"
	"net/http"

	"github.com/FabienMht/ginslog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/car-api/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-api/pkg/core/log"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

// RequestIDHeader is read from requests and written to responses.
const RequestIDHeader = "X-Request-ID"

// New creates a gin engine which uses the given middlewares. The
// engine contexts fall back to their request contexts, so the
// *gin.Context instances may be passed to the use cases directly.
func New(middlewares ...HandlerFunc) *Engine {
	serdser.RegisterValidators()
	e := gin.New()
	e.ContextWithFallback = true
	e.Use(middlewares...)
	return e
}

// SetMode sets the gin mode, e.g., gin.ReleaseMode.
func SetMode(mode string) {
	gin.SetMode(mode)
}

// Logger logs one record per request using the l logger.
func Logger(l *slog.Logger) HandlerFunc {
	return ginslog.New(l)
}

// Recovery converts panics into 500 responses after logging them.
func Recovery() HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error(c, "recovered from panic", slog.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"detail": "Internal server error",
		})
	})
}

// RequestID attaches a request id to the request context, so all log
// records of the request carry it. An id which is passed by the client
// is kept if it is a valid UUID.
func RequestID() HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		ctx := log.With(c.Request.Context(), log.RequestID(id))
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
