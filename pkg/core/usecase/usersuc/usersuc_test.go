// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersuc_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/momeni/car-api/internal/test/fake"
	"github.com/momeni/car-api/pkg/core/cerr"
	"github.com/momeni/car-api/pkg/core/guard"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/repo"
	"github.com/momeni/car-api/pkg/core/usecase/usersuc"
	"github.com/stretchr/testify/suite"
)

type prefixHasher struct{}

func (prefixHasher) Hash(p string) (string, error) {
	return "h:" + p, nil
}

func (prefixHasher) Verify(p, d string) bool {
	return d == "h:"+p
}

type UsersSuite struct {
	suite.Suite

	ctx context.Context
	db  *fake.DB
	uc  *usersuc.UseCase
}

func TestUsersSuite(t *testing.T) {
	suite.Run(t, new(UsersSuite))
}

func (us *UsersSuite) SetupTest() {
	us.ctx = context.Background()
	us.db = fake.New()
	g := guard.New(fake.Users{}, fake.Brands{}, fake.Cars{})
	var err error
	us.uc, err = usersuc.New(
		us.db.Pool(), fake.Users{}, g, prefixHasher{},
		usersuc.WithListLimits(2, 5),
	)
	us.Require().NoError(err)
}

func (us *UsersSuite) status(err error) int {
	var ce *cerr.Error
	us.Require().ErrorAs(err, &ce)
	return ce.HTTPStatusCode
}

func (us *UsersSuite) TestCreate() {
	u, err := us.uc.Create(us.ctx, "joao", "joao@x.com", "secret12")
	us.Require().NoError(err)
	us.NotZero(u.ID)
	us.False(u.CreatedAt.IsZero())
	us.Equal("h:secret12", u.PasswordHash)

	_, err = us.uc.Create(us.ctx, "joao", "other@x.com", "secret12")
	us.Equal(http.StatusBadRequest, us.status(err))
	var conflict *cerr.ConflictError
	us.Require().ErrorAs(err, &conflict)
	us.Equal(cerr.FieldUsername, conflict.Field)

	_, err = us.uc.Create(us.ctx, "maria", "joao@x.com", "secret12")
	us.Require().ErrorAs(err, &conflict)
	us.Equal(cerr.FieldEmail, conflict.Field)
}

func (us *UsersSuite) TestCreateValidation() {
	_, err := us.uc.Create(us.ctx, "jo", "not-an-email", "123")
	us.Equal(http.StatusUnprocessableEntity, us.status(err))
	var fe cerr.FieldsError
	us.Require().ErrorAs(err, &fe)
	us.Contains(fe, "username")
	us.Contains(fe, "email")
	us.Contains(fe, "password")
}

func (us *UsersSuite) TestListPages() {
	for i := 0; i < 4; i++ {
		_, err := us.uc.Create(
			us.ctx, fmt.Sprintf("user%d", i),
			fmt.Sprintf("user%d@x.com", i), "secret12",
		)
		us.Require().NoError(err)
	}
	users, p, err := us.uc.List(us.ctx, model.UserFilter{})
	us.Require().NoError(err)
	us.Equal(2, p.Limit)
	us.Len(users, 2)

	users, p, err = us.uc.List(us.ctx, model.UserFilter{
		Page: model.Page{Offset: 3, Limit: 5},
	})
	us.Require().NoError(err)
	us.Equal(3, p.Offset)
	us.Len(users, 1)
	us.Equal("user3", users[0].Username)

	users, _, err = us.uc.List(us.ctx, model.UserFilter{
		Page: model.Page{Search: "USER2"},
	})
	us.Require().NoError(err)
	us.Len(users, 1)

	_, _, err = us.uc.List(us.ctx, model.UserFilter{
		Page: model.Page{Offset: -1, Limit: 6},
	})
	us.Equal(http.StatusUnprocessableEntity, us.status(err))
}

func (us *UsersSuite) TestGetUpdateDelete() {
	u, err := us.uc.Create(us.ctx, "joao", "joao@x.com", "secret12")
	us.Require().NoError(err)
	_, err = us.uc.Create(us.ctx, "maria", "maria@x.com", "secret12")
	us.Require().NoError(err)

	got, err := us.uc.Get(us.ctx, u.ID)
	us.Require().NoError(err)
	us.Equal("joao", got.Username)

	_, err = us.uc.Get(us.ctx, 999)
	us.Equal(http.StatusNotFound, us.status(err))
	us.ErrorIs(err, usersuc.ErrUserNotFound)

	name, pass := "joao2", "newsecret"
	updated, err := us.uc.Update(us.ctx, u.ID, model.UserPatch{
		Username: &name, Password: &pass,
	})
	us.Require().NoError(err)
	us.Equal("joao2", updated.Username)
	us.Equal("joao@x.com", updated.Email)
	us.Equal("h:newsecret", updated.PasswordHash)

	email := "maria@x.com"
	_, err = us.uc.Update(us.ctx, u.ID, model.UserPatch{Email: &email})
	var conflict *cerr.ConflictError
	us.Require().ErrorAs(err, &conflict)
	us.Equal(cerr.FieldEmail, conflict.Field)

	_, err = us.uc.Update(us.ctx, 999, model.UserPatch{Username: &name})
	us.Equal(http.StatusNotFound, us.status(err))

	us.Require().NoError(us.uc.Delete(us.ctx, u.ID))
	err = us.uc.Delete(us.ctx, u.ID)
	us.Equal(http.StatusNotFound, us.status(err))
}

func (us *UsersSuite) TestDeleteOwnerIsBlocked() {
	u, err := us.uc.Create(us.ctx, "joao", "joao@x.com", "secret12")
	us.Require().NoError(err)
	pool := us.db.Pool()
	us.Require().NoError(pool.Conn(us.ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			b, err := fake.Brands{}.Tx(tx).Create(ctx, &model.Brand{Name: "Fiat"})
			if err != nil {
				return err
			}
			_, err = fake.Cars{}.Tx(tx).Create(ctx, &model.Car{
				Model: "Uno", Plate: "UNO1234", BrandID: b.ID, OwnerID: u.ID,
			})
			return err
		})
	}))
	err = us.uc.Delete(us.ctx, u.ID)
	us.Equal(http.StatusBadRequest, us.status(err))
	var conflict *cerr.ConflictError
	us.Require().ErrorAs(err, &conflict)
	us.Equal(cerr.FieldHasCars, conflict.Field)

	_, err = us.uc.Get(us.ctx, u.ID)
	us.NoError(err, "user must be kept")
}
