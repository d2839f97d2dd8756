// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersrp

import (
	"context"
	"fmt"
	"time"

	"github.com/momeni/car-api/pkg/adapter/db/postgres"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/repo"
)

// GUser is the GORM representation of a users row. It is exported,
// so the cars repository may preload it as the owner of cars.
type GUser struct {
	ID        int64 `gorm:"primaryKey"`
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (gu *GUser) TableName() string {
	return "users"
}

func (gu *GUser) Model() *model.User {
	return &model.User{
		ID:           gu.ID,
		Username:     gu.Username,
		Email:        gu.Email,
		PasswordHash: gu.Password,
		CreatedAt:    gu.CreatedAt,
		UpdatedAt:    gu.UpdatedAt,
	}
}

func fromModel(u *model.User) *GUser {
	return &GUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.PasswordHash,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id int64) (*model.User, error) {
	var gu GUser
	if err := q.GORM(ctx).Take(&gu, id).Error; err != nil {
		return nil, postgres.TranslateError(err)
	}
	return gu.Model(), nil
}

func GetByEmail[Q postgres.Queryer](ctx context.Context, q Q, email string) (*model.User, error) {
	var gu GUser
	err := q.GORM(ctx).Where("email = ?", email).Take(&gu).Error
	if err != nil {
		return nil, postgres.TranslateError(err)
	}
	return gu.Model(), nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q, f model.UserFilter) ([]model.User, error) {
	gdb := q.GORM(ctx).Order("id").Offset(f.Offset).Limit(f.Limit)
	if f.Search != "" {
		pattern := "%" + postgres.EscapeLike(f.Search) + "%"
		gdb = gdb.Where("username ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	var gus []GUser
	if err := gdb.Find(&gus).Error; err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	users := make([]model.User, 0, len(gus))
	for i := range gus {
		users = append(users, *gus[i].Model())
	}
	return users, nil
}

func Exists[Q postgres.Queryer](ctx context.Context, q Q, id int64) (bool, error) {
	return postgres.Exists(ctx, q, "users", "id = ?", id)
}

func UsernameExists[Q postgres.Queryer](ctx context.Context, q Q, username string) (bool, error) {
	return postgres.Exists(ctx, q, "users", "username = ?", username)
}

func EmailExists[Q postgres.Queryer](ctx context.Context, q Q, email string) (bool, error) {
	return postgres.Exists(ctx, q, "users", "email = ?", email)
}

func Create(ctx context.Context, tx *postgres.Tx, u *model.User) (*model.User, error) {
	gu := fromModel(u)
	gu.ID = 0
	if err := tx.GORM(ctx).Create(gu).Error; err != nil {
		return nil, postgres.TranslateError(err)
	}
	return gu.Model(), nil
}

func Update(ctx context.Context, tx *postgres.Tx, u *model.User) (*model.User, error) {
	gu := fromModel(u)
	gu.UpdatedAt = time.Now()
	gdb := tx.GORM(ctx).Model(gu).Select(
		"username", "email", "password", "updated_at",
	).Updates(gu)
	if err := gdb.Error; err != nil {
		return nil, postgres.TranslateError(err)
	}
	if gdb.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}
	return Get(ctx, tx, u.ID)
}

func Delete(ctx context.Context, tx *postgres.Tx, id int64) error {
	gdb := tx.GORM(ctx).Delete(&GUser{}, id)
	if err := gdb.Error; err != nil {
		return postgres.TranslateDeleteError(err)
	}
	if gdb.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
