// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrs realizes the cars resource, allowing the cars
// manipulation REST APIs to be accepted and delegated to the
// cars use cases respectively.
package carsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/car-api/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-api/pkg/core/usecase/carsuc"
)

type resource struct {
	cars *carsuc.UseCase
}

// Register instantiates a resource adapting the cars use case instance
// with the /cars REST APIs, all guarded by the bearer middleware.
// Cars are reported with their brands and owners.
func Register(r *gin.RouterGroup, cars *carsuc.UseCase, bearer gin.HandlerFunc) {
	rs := &resource{cars: cars}
	g := r.Group("cars", bearer)
	g.POST("/", rs.Create)
	g.GET("/", rs.List)
	g.GET("/:id", rs.Get)
	g.PUT("/:id", rs.Update)
	g.DELETE("/:id", rs.Delete)
}

func (rs *resource) Create(c *gin.Context) {
	req := &createCarReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	car, err := rs.cars.Create(c, req.ToModel())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewCar(car))
}

func (rs *resource) List(c *gin.Context) {
	req := &listCarsReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return
	}
	cs, p, err := rs.cars.List(c, req.ToModel())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	resp := listCarsResp{
		Cars:     make([]*Car, 0, len(cs)),
		PageResp: serdser.NewPageResp(p),
	}
	for i := range cs {
		resp.Cars = append(resp.Cars, NewCar(&cs[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (rs *resource) Get(c *gin.Context) {
	req := &serdser.IDReq{}
	if ok := serdser.BindUri(c, req); !ok {
		return
	}
	car, err := rs.cars.Get(c, req.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCar(car))
}

func (rs *resource) Update(c *gin.Context) {
	id := &serdser.IDReq{}
	if ok := serdser.BindUri(c, id); !ok {
		return
	}
	req := &updateCarReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	car, err := rs.cars.Update(c, id.ID, req.ToModel())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCar(car))
}

func (rs *resource) Delete(c *gin.Context) {
	req := &serdser.IDReq{}
	if ok := serdser.BindUri(c, req); !ok {
		return
	}
	if err := rs.cars.Delete(c, req.ID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
