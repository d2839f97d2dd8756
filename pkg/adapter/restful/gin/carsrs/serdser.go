// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsrs

import (
	"encoding/json"
	"time"

	"github.com/momeni/car-api/pkg/adapter/restful/gin/brandsrs"
	"github.com/momeni/car-api/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-api/pkg/adapter/restful/gin/usersrs"
	"github.com/momeni/car-api/pkg/core/model"
)

// Prices may be sent as JSON numbers or strings, e.g., 120.5 or
// "120.50", and are validated by the price tag before conversion.
type createCarReq struct {
	Model        string      `json:"model" binding:"required"`
	FactoryYear  int         `json:"factory_year" binding:"required"`
	ModelYear    int         `json:"model_year" binding:"required"`
	Color        string      `json:"color" binding:"required"`
	Plate        string      `json:"plate" binding:"required"`
	FuelType     string      `json:"fuel_type" binding:"required,fuel"`
	Transmission string      `json:"transmission" binding:"required,transmission"`
	Price        json.Number `json:"price" binding:"required,price"`
	Description  *string     `json:"description"`
	IsAvailable  *bool       `json:"is_available"`
	BrandID      int64       `json:"brand_id" binding:"required"`
	OwnerID      int64       `json:"owner_id" binding:"required"`
}

// ToModel converts req, which must be validated by the binding tags.
func (req *createCarReq) ToModel() *model.Car {
	c := &model.Car{
		Model:       req.Model,
		FactoryYear: req.FactoryYear,
		ModelYear:   req.ModelYear,
		Color:       req.Color,
		Plate:       req.Plate,
		Description: req.Description,
		IsAvailable: true,
		BrandID:     req.BrandID,
		OwnerID:     req.OwnerID,
	}
	c.FuelType, _ = model.ParseFuelType(req.FuelType)
	c.Transmission, _ = model.ParseTransmission(req.Transmission)
	c.Price, _ = model.ParsePrice(req.Price.String())
	if req.IsAvailable != nil {
		c.IsAvailable = *req.IsAvailable
	}
	return c
}

type updateCarReq struct {
	Model        *string      `json:"model"`
	FactoryYear  *int         `json:"factory_year"`
	ModelYear    *int         `json:"model_year"`
	Color        *string      `json:"color"`
	Plate        *string      `json:"plate"`
	FuelType     *string      `json:"fuel_type" binding:"omitempty,fuel"`
	Transmission *string      `json:"transmission" binding:"omitempty,transmission"`
	Price        *json.Number `json:"price" binding:"omitempty,price"`
	Description  *string      `json:"description"`
	IsAvailable  *bool        `json:"is_available"`
	BrandID      *int64       `json:"brand_id"`
	OwnerID      *int64       `json:"owner_id"`
}

func (req *updateCarReq) ToModel() model.CarPatch {
	p := model.CarPatch{
		Model:       req.Model,
		FactoryYear: req.FactoryYear,
		ModelYear:   req.ModelYear,
		Color:       req.Color,
		Plate:       req.Plate,
		Description: req.Description,
		IsAvailable: req.IsAvailable,
		BrandID:     req.BrandID,
		OwnerID:     req.OwnerID,
	}
	if req.FuelType != nil {
		f, _ := model.ParseFuelType(*req.FuelType)
		p.FuelType = &f
	}
	if req.Transmission != nil {
		t, _ := model.ParseTransmission(*req.Transmission)
		p.Transmission = &t
	}
	if req.Price != nil {
		price, _ := model.ParsePrice(req.Price.String())
		p.Price = &price
	}
	return p
}

type listCarsReq struct {
	serdser.PageReq
	BrandID      *int64 `form:"brand_id"`
	FuelType     string `form:"fuel_type" binding:"omitempty,fuel"`
	Transmission string `form:"transmission" binding:"omitempty,transmission"`
	IsAvailable  *bool  `form:"is_available"`
	MinPrice     string `form:"min_price" binding:"omitempty,price"`
	MaxPrice     string `form:"max_price" binding:"omitempty,price"`
}

func (req *listCarsReq) ToModel() model.CarFilter {
	f := model.CarFilter{
		Page:        req.Page(),
		BrandID:     req.BrandID,
		IsAvailable: req.IsAvailable,
	}
	if req.FuelType != "" {
		ft, _ := model.ParseFuelType(req.FuelType)
		f.FuelType = &ft
	}
	if req.Transmission != "" {
		t, _ := model.ParseTransmission(req.Transmission)
		f.Transmission = &t
	}
	if req.MinPrice != "" {
		p, _ := model.ParsePrice(req.MinPrice)
		f.MinPrice = &p
	}
	if req.MaxPrice != "" {
		p, _ := model.ParsePrice(req.MaxPrice)
		f.MaxPrice = &p
	}
	return f
}

// Car is the JSON representation of a car, embedding its brand and
// the public representation of its owner.
type Car struct {
	ID           int64           `json:"id"`
	Model        string          `json:"model"`
	FactoryYear  int             `json:"factory_year"`
	ModelYear    int             `json:"model_year"`
	Color        string          `json:"color"`
	Plate        string          `json:"plate"`
	FuelType     string          `json:"fuel_type"`
	Transmission string          `json:"transmission"`
	Price        model.Price     `json:"price"`
	Description  *string         `json:"description"`
	IsAvailable  bool            `json:"is_available"`
	BrandID      int64           `json:"brand_id"`
	OwnerID      int64           `json:"owner_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Brand        *brandsrs.Brand `json:"brand"`
	Owner        *usersrs.User   `json:"owner"`
}

// NewCar converts c to its JSON representation.
func NewCar(c *model.Car) *Car {
	return &Car{
		ID:           c.ID,
		Model:        c.Model,
		FactoryYear:  c.FactoryYear,
		ModelYear:    c.ModelYear,
		Color:        c.Color,
		Plate:        c.Plate,
		FuelType:     c.FuelType.String(),
		Transmission: c.Transmission.String(),
		Price:        c.Price,
		Description:  c.Description,
		IsAvailable:  c.IsAvailable,
		BrandID:      c.BrandID,
		OwnerID:      c.OwnerID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Brand:        brandsrs.NewBrand(c.Brand),
		Owner:        usersrs.NewUser(c.Owner),
	}
}

type listCarsResp struct {
	Cars []*Car `json:"cars"`
	serdser.PageResp
}
