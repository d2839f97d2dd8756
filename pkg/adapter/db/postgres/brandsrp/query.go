// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package brandsrp

import (
	"context"
	"fmt"
	"time"

	"github.com/momeni/car-api/pkg/adapter/db/postgres"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/repo"
)

// GBrand is the GORM representation of a brands row.
type GBrand struct {
	ID          int64 `gorm:"primaryKey"`
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (gb *GBrand) TableName() string {
	return "brands"
}

func (gb *GBrand) Model() *model.Brand {
	return &model.Brand{
		ID:          gb.ID,
		Name:        gb.Name,
		Description: gb.Description,
		IsActive:    gb.IsActive,
		CreatedAt:   gb.CreatedAt,
		UpdatedAt:   gb.UpdatedAt,
	}
}

func fromModel(b *model.Brand) *GBrand {
	return &GBrand{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id int64) (*model.Brand, error) {
	var gb GBrand
	if err := q.GORM(ctx).Take(&gb, id).Error; err != nil {
		return nil, postgres.TranslateError(err)
	}
	return gb.Model(), nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q, f model.BrandFilter) ([]model.Brand, error) {
	gdb := q.GORM(ctx).Order("id").Offset(f.Offset).Limit(f.Limit)
	if f.Search != "" {
		gdb = gdb.Where("name ILIKE ?", "%"+postgres.EscapeLike(f.Search)+"%")
	}
	if f.IsActive != nil {
		gdb = gdb.Where("is_active = ?", *f.IsActive)
	}
	var gbs []GBrand
	if err := gdb.Find(&gbs).Error; err != nil {
		return nil, fmt.Errorf("listing brands: %w", err)
	}
	brands := make([]model.Brand, 0, len(gbs))
	for i := range gbs {
		brands = append(brands, *gbs[i].Model())
	}
	return brands, nil
}

func Exists[Q postgres.Queryer](ctx context.Context, q Q, id int64) (bool, error) {
	return postgres.Exists(ctx, q, "brands", "id = ?", id)
}

func NameExists[Q postgres.Queryer](ctx context.Context, q Q, name string) (bool, error) {
	return postgres.Exists(ctx, q, "brands", "name = ?", name)
}

func Create(ctx context.Context, tx *postgres.Tx, b *model.Brand) (*model.Brand, error) {
	gb := fromModel(b)
	gb.ID = 0
	// is_active is selected explicitly, so a false value is not
	// replaced by the column default
	err := tx.GORM(ctx).Select(
		"name", "description", "is_active", "created_at", "updated_at",
	).Create(gb).Error
	if err != nil {
		return nil, postgres.TranslateError(err)
	}
	return gb.Model(), nil
}

func Update(ctx context.Context, tx *postgres.Tx, b *model.Brand) (*model.Brand, error) {
	gb := fromModel(b)
	gb.UpdatedAt = time.Now()
	gdb := tx.GORM(ctx).Model(gb).Select(
		"name", "description", "is_active", "updated_at",
	).Updates(gb)
	if err := gdb.Error; err != nil {
		return nil, postgres.TranslateError(err)
	}
	if gdb.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}
	return Get(ctx, tx, b.ID)
}

func Delete(ctx context.Context, tx *postgres.Tx, id int64) error {
	gdb := tx.GORM(ctx).Delete(&GBrand{}, id)
	if err := gdb.Error; err != nil {
		return postgres.TranslateDeleteError(err)
	}
	if gdb.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
