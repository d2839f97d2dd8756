// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authrs realizes the authentication resource, issuing and
// refreshing of bearer tokens and their revocation, and provides the
// Bearer middleware which protects other resources.
package authrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/car-api/pkg/adapter/kv"
	"github.com/momeni/car-api/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-api/pkg/core/cerr"
	"github.com/momeni/car-api/pkg/core/usecase/authuc"
)

type resource struct {
	auth *authuc.UseCase
}

// Register instantiates a resource adapting the auth use case instance
// with the relevant REST APIs including:
//  1. POST request to /auth/token in order to log in,
//  2. POST request to /auth/refresh_token in order to get a fresh
//     token for a valid bearer token, and
//  3. POST request to /auth/logout in order to revoke a bearer token.
//
// Login attempts are throttled per client IP address by the limiter,
// unless it is nil.
func Register(r *gin.RouterGroup, auth *authuc.UseCase, limiter kv.Limiter) {
	rs := &resource{auth: auth}
	g := r.Group("auth")
	login := []gin.HandlerFunc{rs.Login}
	if limiter != nil {
		login = append([]gin.HandlerFunc{Throttle(limiter)}, login...)
	}
	g.POST("token", login...)
	bearer := Bearer(auth)
	g.POST("refresh_token", bearer, rs.Refresh)
	g.POST("logout", bearer, rs.Logout)
}

type loginReq struct {
	Email    string `json:"email" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login accepts a JSON body or an OAuth2 password grant form, where
// the email is passed as the username field.
func (rs *resource) Login(c *gin.Context) {
	req := &loginReq{}
	b := binding.Default(c.Request.Method, c.ContentType())
	if ok := serdser.Bind(c, req, b); !ok {
		return
	}
	tok, err := rs.auth.Login(c, req.Email, req.Password)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResp{
		AccessToken: tok.Access,
		TokenType:   tok.Type,
	})
}

func (rs *resource) Refresh(c *gin.Context) {
	tok, err := rs.auth.Refresh(c, RawToken(c))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResp{
		AccessToken: tok.Access,
		TokenType:   tok.Type,
	})
}

func (rs *resource) Logout(c *gin.Context) {
	if err := rs.auth.Logout(c, RawToken(c)); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Throttle rejects requests of clients which exceeded their quota
// with the 429 status code.
func Throttle(limiter kv.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c, c.ClientIP()) {
			serdser.SerErr(c, cerr.TooManyRequests(cerr.ErrTooManyAttempts))
			c.Abort()
			return
		}
		c.Next()
	}
}
