// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package brandsrs realizes the brands resource, allowing the brands
// manipulation REST APIs to be accepted and delegated to the brands
// use cases respectively. All of its routes need a bearer token.
package brandsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/car-api/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/usecase/brandsuc"
)

type resource struct {
	brands *brandsuc.UseCase
}

// Register instantiates a resource adapting the brands use case with
// the /brands REST APIs, all guarded by the bearer middleware.
func Register(r *gin.RouterGroup, brands *brandsuc.UseCase, bearer gin.HandlerFunc) {
	rs := &resource{brands: brands}
	g := r.Group("brands", bearer)
	g.POST("/", rs.Create)
	g.GET("/", rs.List)
	g.GET("/:id", rs.Get)
	g.PUT("/:id", rs.Update)
	g.DELETE("/:id", rs.Delete)
}

func (rs *resource) Create(c *gin.Context) {
	req := &createBrandReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	b, err := rs.brands.Create(c, req.ToModel())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBrand(b))
}

func (rs *resource) List(c *gin.Context) {
	req := &listBrandsReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return
	}
	bs, p, err := rs.brands.List(c, model.BrandFilter{
		Page:     req.Page(),
		IsActive: req.IsActive,
	})
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	resp := listBrandsResp{
		Brands:   make([]*Brand, 0, len(bs)),
		PageResp: serdser.NewPageResp(p),
	}
	for i := range bs {
		resp.Brands = append(resp.Brands, NewBrand(&bs[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (rs *resource) Get(c *gin.Context) {
	req := &serdser.IDReq{}
	if ok := serdser.BindUri(c, req); !ok {
		return
	}
	b, err := rs.brands.Get(c, req.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBrand(b))
}

func (rs *resource) Update(c *gin.Context) {
	id := &serdser.IDReq{}
	if ok := serdser.BindUri(c, id); !ok {
		return
	}
	req := &updateBrandReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	b, err := rs.brands.Update(c, id.ID, req.ToModel())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBrand(b))
}

func (rs *resource) Delete(c *gin.Context) {
	req := &serdser.IDReq{}
	if ok := serdser.BindUri(c, req); !ok {
		return
	}
	if err := rs.brands.Delete(c, req.ID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
