// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package brandsrs

import (
	"time"

	"github.com/momeni/car-api/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-api/pkg/core/model"
)

type createBrandReq struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (req *createBrandReq) ToModel() *model.Brand {
	b := &model.Brand{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	return b
}

type updateBrandReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (req *updateBrandReq) ToModel() model.BrandPatch {
	return model.BrandPatch{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
}

type listBrandsReq struct {
	serdser.PageReq
	IsActive *bool `form:"is_active"`
}

// Brand is the JSON representation of a brand.
type Brand struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewBrand converts b to its JSON representation, or returns nil.
func NewBrand(b *model.Brand) *Brand {
	if b == nil {
		return nil
	}
	return &Brand{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

type listBrandsResp struct {
	Brands []*Brand `json:"brands"`
	serdser.PageResp
}
