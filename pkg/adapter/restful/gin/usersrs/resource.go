// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrs realizes the users resource, allowing the users
// manipulation REST APIs to be accepted and delegated to the users
// use cases respectively.
package usersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/car-api/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/usecase/usersuc"
)

type resource struct {
	users *usersuc.UseCase
}

// Register instantiates a resource adapting the users use case with
// the /users REST APIs. Signing up, listing, and getting of users
// are public, while updating and deleting need the bearer middleware.
func Register(r *gin.RouterGroup, users *usersuc.UseCase, bearer gin.HandlerFunc) {
	rs := &resource{users: users}
	g := r.Group("users")
	g.POST("/", rs.Create)
	g.GET("/", rs.List)
	g.GET("/:id", rs.Get)
	g.PUT("/:id", bearer, rs.Update)
	g.DELETE("/:id", bearer, rs.Delete)
}

func (rs *resource) Create(c *gin.Context) {
	req := &createUserReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	u, err := rs.users.Create(c, req.Username, req.Email, req.Password)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewUser(u))
}

func (rs *resource) List(c *gin.Context) {
	req := &serdser.PageReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return
	}
	us, p, err := rs.users.List(c, model.UserFilter{Page: req.Page()})
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	resp := listUsersResp{
		Users:    make([]*User, 0, len(us)),
		PageResp: serdser.NewPageResp(p),
	}
	for i := range us {
		resp.Users = append(resp.Users, NewUser(&us[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (rs *resource) Get(c *gin.Context) {
	req := &serdser.IDReq{}
	if ok := serdser.BindUri(c, req); !ok {
		return
	}
	u, err := rs.users.Get(c, req.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, NewUser(u))
}

func (rs *resource) Update(c *gin.Context) {
	id := &serdser.IDReq{}
	if ok := serdser.BindUri(c, id); !ok {
		return
	}
	req := &updateUserReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	u, err := rs.users.Update(c, id.ID, req.ToModel())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewUser(u))
}

func (rs *resource) Delete(c *gin.Context) {
	req := &serdser.IDReq{}
	if ok := serdser.BindUri(c, req); !ok {
		return
	}
	if err := rs.users.Delete(c, req.ID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
