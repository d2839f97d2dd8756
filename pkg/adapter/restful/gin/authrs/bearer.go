// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package authrs

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-api/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-api/pkg/core/cerr"
	"github.com/momeni/car-api/pkg/core/log"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/usecase/authuc"
)

var errNotAuthenticated = errors.New("Not authenticated")

const (
	identityKey = "carapi.identity"
	rawTokenKey = "carapi.token"
)

// Bearer authenticates the bearer token of the Authorization header
// and aborts with 401 if it is missing or not valid. Otherwise, the
// authenticated identity is kept in the context for the next handlers.
func Bearer(auth *authuc.UseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, tok, _ := strings.Cut(c.GetHeader("Authorization"), " ")
		tok = strings.TrimSpace(tok)
		if !strings.EqualFold(scheme, "Bearer") || tok == "" {
			serdser.SerErr(c, cerr.Authentication(errNotAuthenticated))
			c.Abort()
			return
		}
		id, err := auth.Authenticate(c, tok)
		if err != nil {
			serdser.SerErr(c, err)
			c.Abort()
			return
		}
		c.Set(identityKey, id)
		c.Set(rawTokenKey, tok)
		ctx := log.With(c.Request.Context(), log.EntityID("user", id.UserID))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CurrentIdentity returns the identity which was authenticated by the
// Bearer middleware, or nil.
func CurrentIdentity(c *gin.Context) *model.Identity {
	id, _ := c.Value(identityKey).(*model.Identity)
	return id
}

// RawToken returns the bearer token which was authenticated by the
// Bearer middleware, or an empty string.
func RawToken(c *gin.Context) string {
	return c.GetString(rawTokenKey)
}
