// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package brandsuc_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/momeni/car-api/internal/test/fake"
	"github.com/momeni/car-api/pkg/core/cerr"
	"github.com/momeni/car-api/pkg/core/guard"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/repo"
	"github.com/momeni/car-api/pkg/core/usecase/brandsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) (*brandsuc.UseCase, *fake.DB) {
	db := fake.New()
	g := guard.New(fake.Users{}, fake.Brands{}, fake.Cars{})
	uc, err := brandsuc.New(db.Pool(), fake.Brands{}, g)
	require.NoError(t, err)
	return uc, db
}

func statusOf(t *testing.T, err error) int {
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	return ce.HTTPStatusCode
}

func TestCreateAndRename(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)
	toyota, err := uc.Create(ctx, &model.Brand{Name: "Toyota", IsActive: true})
	require.NoError(t, err)
	_, err = uc.Create(ctx, &model.Brand{Name: "Honda", IsActive: true})
	require.NoError(t, err)

	_, err = uc.Create(ctx, &model.Brand{Name: "Toyota"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	var conflict *cerr.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, cerr.FieldName, conflict.Field)

	_, err = uc.Create(ctx, &model.Brand{Name: "T"})
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))

	name := "Honda"
	_, err = uc.Update(ctx, toyota.ID, model.BrandPatch{Name: &name})
	require.ErrorAs(t, err, &conflict)

	inactive, desc := false, "Japanese"
	b, err := uc.Update(ctx, toyota.ID, model.BrandPatch{
		IsActive: &inactive, Description: &desc,
	})
	require.NoError(t, err)
	assert.False(t, b.IsActive)
	assert.Equal(t, "Toyota", b.Name)
	require.NotNil(t, b.Description)
	assert.Equal(t, "Japanese", *b.Description)

	active := true
	bs, p, err := uc.List(ctx, model.BrandFilter{IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPageLimit, p.Limit)
	require.Len(t, bs, 1)
	assert.Equal(t, "Honda", bs[0].Name)

	_, err = uc.Get(ctx, 404)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	assert.ErrorIs(t, err, brandsuc.ErrBrandNotFound)
}

func TestDeleteBrandWithCars(t *testing.T) {
	ctx := context.Background()
	uc, db := newUseCase(t)
	empty, err := uc.Create(ctx, &model.Brand{Name: "Lada", IsActive: true})
	require.NoError(t, err)
	used, err := uc.Create(ctx, &model.Brand{Name: "Fiat", IsActive: true})
	require.NoError(t, err)

	pool := db.Pool()
	require.NoError(t, pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			_, err := fake.Cars{}.Tx(tx).Create(ctx, &model.Car{
				Model: "Uno", Plate: "UNO1234", BrandID: used.ID, OwnerID: 1,
			})
			return err
		})
	}))

	require.NoError(t, uc.Delete(ctx, empty.ID))
	err = uc.Delete(ctx, used.ID)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	var conflict *cerr.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, cerr.FieldHasCars, conflict.Field)

	err = uc.Delete(ctx, empty.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
