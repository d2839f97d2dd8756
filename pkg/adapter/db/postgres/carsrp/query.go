// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsrp

import (
	"context"
	"fmt"
	"time"

	"github.com/momeni/car-api/pkg/adapter/db/postgres"
	"github.com/momeni/car-api/pkg/adapter/db/postgres/brandsrp"
	"github.com/momeni/car-api/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/repo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gCar keeps the price as a decimal string, so the numeric column
// never passes through a float.
type gCar struct {
	ID           int64 `gorm:"primaryKey"`
	Model        string
	FactoryYear  int
	ModelYear    int
	Color        string
	Plate        string
	FuelType     string
	Transmission string
	Price        string
	Description  *string
	IsAvailable  bool
	BrandID      int64
	OwnerID      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Brand *brandsrp.GBrand `gorm:"foreignKey:BrandID"`
	Owner *usersrp.GUser   `gorm:"foreignKey:OwnerID"`
}

func (gc *gCar) TableName() string {
	return "cars"
}

func (gc *gCar) toModel() (*model.Car, error) {
	ft, err := model.ParseFuelType(gc.FuelType)
	if err != nil {
		return nil, fmt.Errorf("car %d: fuel type %q: %w", gc.ID, gc.FuelType, err)
	}
	tr, err := model.ParseTransmission(gc.Transmission)
	if err != nil {
		return nil, fmt.Errorf(
			"car %d: transmission %q: %w", gc.ID, gc.Transmission, err,
		)
	}
	price, err := model.ParsePrice(gc.Price)
	if err != nil {
		return nil, fmt.Errorf("car %d: price %q: %w", gc.ID, gc.Price, err)
	}
	c := &model.Car{
		ID:           gc.ID,
		Model:        gc.Model,
		FactoryYear:  gc.FactoryYear,
		ModelYear:    gc.ModelYear,
		Color:        gc.Color,
		Plate:        gc.Plate,
		FuelType:     ft,
		Transmission: tr,
		Price:        price,
		Description:  gc.Description,
		IsAvailable:  gc.IsAvailable,
		BrandID:      gc.BrandID,
		OwnerID:      gc.OwnerID,
		CreatedAt:    gc.CreatedAt,
		UpdatedAt:    gc.UpdatedAt,
	}
	if gc.Brand != nil {
		c.Brand = gc.Brand.Model()
	}
	if gc.Owner != nil {
		c.Owner = gc.Owner.Model()
	}
	return c, nil
}

func fromModel(c *model.Car) *gCar {
	return &gCar{
		ID:           c.ID,
		Model:        c.Model,
		FactoryYear:  c.FactoryYear,
		ModelYear:    c.ModelYear,
		Color:        c.Color,
		Plate:        c.Plate,
		FuelType:     c.FuelType.String(),
		Transmission: c.Transmission.String(),
		Price:        c.Price.String(),
		Description:  c.Description,
		IsAvailable:  c.IsAvailable,
		BrandID:      c.BrandID,
		OwnerID:      c.OwnerID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func withRelations(gdb *gorm.DB) *gorm.DB {
	return gdb.Preload("Brand").Preload("Owner")
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id int64) (*model.Car, error) {
	var gc gCar
	if err := withRelations(q.GORM(ctx)).Take(&gc, id).Error; err != nil {
		return nil, postgres.TranslateError(err)
	}
	return gc.toModel()
}

func List[Q postgres.Queryer](ctx context.Context, q Q, f model.CarFilter) ([]model.Car, error) {
	gdb := withRelations(q.GORM(ctx)).Order("id").Offset(f.Offset).Limit(f.Limit)
	if f.Search != "" {
		pattern := "%" + postgres.EscapeLike(f.Search) + "%"
		gdb = gdb.Where(
			"model ILIKE ? OR color ILIKE ? OR plate ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if f.BrandID != nil {
		gdb = gdb.Where("brand_id = ?", *f.BrandID)
	}
	if f.FuelType != nil {
		gdb = gdb.Where("fuel_type = ?", f.FuelType.String())
	}
	if f.Transmission != nil {
		gdb = gdb.Where("transmission = ?", f.Transmission.String())
	}
	if f.IsAvailable != nil {
		gdb = gdb.Where("is_available = ?", *f.IsAvailable)
	}
	if f.MinPrice != nil {
		gdb = gdb.Where("price >= ?::numeric", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		gdb = gdb.Where("price <= ?::numeric", f.MaxPrice.String())
	}
	var gcs []gCar
	if err := gdb.Find(&gcs).Error; err != nil {
		return nil, fmt.Errorf("listing cars: %w", err)
	}
	cars := make([]model.Car, 0, len(gcs))
	for i := range gcs {
		c, err := gcs[i].toModel()
		if err != nil {
			return nil, err
		}
		cars = append(cars, *c)
	}
	return cars, nil
}

func PlateExists[Q postgres.Queryer](ctx context.Context, q Q, plate string) (bool, error) {
	return postgres.Exists(ctx, q, "cars", "plate = ?", plate)
}

func ExistsByBrand[Q postgres.Queryer](ctx context.Context, q Q, brandID int64) (bool, error) {
	return postgres.Exists(ctx, q, "cars", "brand_id = ?", brandID)
}

func ExistsByOwner[Q postgres.Queryer](ctx context.Context, q Q, ownerID int64) (bool, error) {
	return postgres.Exists(ctx, q, "cars", "owner_id = ?", ownerID)
}

func Create(ctx context.Context, tx *postgres.Tx, c *model.Car) (*model.Car, error) {
	gc := fromModel(c)
	gc.ID = 0
	gdb := tx.GORM(ctx).Omit(clause.Associations).Select(
		"model", "factory_year", "model_year", "color", "plate",
		"fuel_type", "transmission", "price", "description",
		"is_available", "brand_id", "owner_id",
		"created_at", "updated_at",
	)
	if err := gdb.Create(gc).Error; err != nil {
		return nil, postgres.TranslateError(err)
	}
	return Get(ctx, tx, gc.ID)
}

func Update(ctx context.Context, tx *postgres.Tx, c *model.Car) (*model.Car, error) {
	gc := fromModel(c)
	gc.UpdatedAt = time.Now()
	gdb := tx.GORM(ctx).Model(gc).Omit(clause.Associations).Select(
		"model", "factory_year", "model_year", "color", "plate",
		"fuel_type", "transmission", "price", "description",
		"is_available", "brand_id", "owner_id", "updated_at",
	).Updates(gc)
	if err := gdb.Error; err != nil {
		return nil, postgres.TranslateError(err)
	}
	if gdb.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}
	return Get(ctx, tx, c.ID)
}

func Delete(ctx context.Context, tx *postgres.Tx, id int64) error {
	gdb := tx.GORM(ctx).Delete(&gCar{}, id)
	if err := gdb.Error; err != nil {
		return fmt.Errorf("deleting car %d: %w", id, err)
	}
	if gdb.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
