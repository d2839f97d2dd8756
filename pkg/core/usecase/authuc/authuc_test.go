// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package authuc_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/momeni/car-api/internal/test/fake"
	"github.com/momeni/car-api/pkg/adapter/token/jwt"
	"github.com/momeni/car-api/pkg/core/cerr"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/repo"
	"github.com/momeni/car-api/pkg/core/usecase/authuc"
	"github.com/stretchr/testify/suite"
)

// plainHasher keeps passwords with a fixed prefix and counts how many
// times Verify is called.
type plainHasher struct {
	mu       sync.Mutex
	verifies int
	longest  int // length of the longest verified password
}

func (h *plainHasher) Hash(password string) (string, error) {
	return "plain$" + password, nil
}

func (h *plainHasher) Verify(password, digest string) bool {
	h.mu.Lock()
	h.verifies++
	h.longest = max(h.longest, len(password))
	h.mu.Unlock()
	return digest == "plain$"+password
}

type mapDenylist struct {
	revoked map[string]time.Duration
	err     error
}

func (d *mapDenylist) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if d.err != nil {
		return d.err
	}
	d.revoked[id] = ttl
	return nil
}

func (d *mapDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.revoked[id]
	return ok, nil
}

type AuthSuite struct {
	suite.Suite

	ctx      context.Context
	db       *fake.DB
	hasher   *plainHasher
	denylist *mapDenylist
	now      time.Time
	uc       *authuc.UseCase
	user     *model.User
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthSuite))
}

func (as *AuthSuite) SetupTest() {
	as.ctx = context.Background()
	as.db = fake.New()
	as.hasher = &plainHasher{}
	as.denylist = &mapDenylist{revoked: map[string]time.Duration{}}
	as.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	codec, err := jwt.New([]byte("0123456789abcdef0123456789abcdef"), 30*time.Minute)
	as.Require().NoError(err)
	as.uc, err = authuc.New(
		as.db.Pool(), fake.Users{}, as.hasher, codec,
		authuc.WithDenylist(as.denylist),
		authuc.WithClock(func() time.Time { return as.now }),
	)
	as.Require().NoError(err)
	pool := as.db.Pool()
	as.Require().NoError(pool.Conn(as.ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) (err error) {
			as.user, err = fake.Users{}.Tx(tx).Create(ctx, &model.User{
				Username:     "joao",
				Email:        "joao@x.com",
				PasswordHash: "plain$secret12",
			})
			return err
		})
	}))
}

func (as *AuthSuite) requireStatus(err error, code int) *cerr.Error {
	var ce *cerr.Error
	as.Require().ErrorAs(err, &ce)
	as.Require().Equal(code, ce.HTTPStatusCode)
	return ce
}

func (as *AuthSuite) TestLoginAndAuthenticate() {
	tok, err := as.uc.Login(as.ctx, "joao@x.com", "secret12")
	as.Require().NoError(err)
	as.Equal(model.TokenTypeBearer, tok.Type)

	id, err := as.uc.Authenticate(as.ctx, tok.Access)
	as.Require().NoError(err)
	as.Equal(as.user.ID, id.UserID)
	as.Equal(tok.ID, id.TokenID)
}

func (as *AuthSuite) TestLoginFailuresAreIndistinguishable() {
	before := as.hasher.verifies
	_, errUnknown := as.uc.Login(as.ctx, "nobody@x.com", "secret12")
	as.Equal(before+1, as.hasher.verifies, "unknown email costs a verification")
	_, errWrong := as.uc.Login(as.ctx, "joao@x.com", "wrong-pass")

	ce1 := as.requireStatus(errUnknown, http.StatusUnauthorized)
	ce2 := as.requireStatus(errWrong, http.StatusUnauthorized)
	as.Equal(ce1.Error(), ce2.Error())
	as.ErrorIs(errUnknown, cerr.ErrInvalidCredentials)
	as.ErrorIs(errWrong, cerr.ErrInvalidCredentials)
	as.Equal("Incorrect email or password", ce1.Err.Error())
}

func (as *AuthSuite) TestLoginRejectsLongPasswordsUnhashed() {
	long := strings.Repeat("x", model.MaxPasswordLen+1)
	before := as.hasher.verifies
	for _, email := range []string{"joao@x.com", "nobody@x.com"} {
		_, err := as.uc.Login(as.ctx, email, long)
		as.requireStatus(err, http.StatusUnauthorized)
		as.ErrorIs(err, cerr.ErrInvalidCredentials)
	}
	as.Equal(before+2, as.hasher.verifies, "the dummy digest is still verified")
	as.Zero(as.hasher.longest, "long passwords are not hashed")

	_, err := as.uc.Login(as.ctx, "joao@x.com", strings.Repeat("x", 4<<20))
	as.ErrorIs(err, cerr.ErrInvalidCredentials)
	as.Zero(as.hasher.longest)
}

func (as *AuthSuite) TestLoginStorageFailure() {
	boom := errors.New("db is down")
	as.db.Fail(boom)
	_, err := as.uc.Login(as.ctx, "joao@x.com", "secret12")
	as.ErrorIs(err, boom)
	as.NotErrorIs(err, cerr.ErrInvalidCredentials)
}

func (as *AuthSuite) TestAuthenticateExpiredAndInvalid() {
	tok, err := as.uc.Login(as.ctx, "joao@x.com", "secret12")
	as.Require().NoError(err)

	as.now = as.now.Add(30 * time.Minute)
	_, err = as.uc.Authenticate(as.ctx, tok.Access)
	ce := as.requireStatus(err, http.StatusUnauthorized)
	as.Equal("Token has expired", ce.Err.Error())

	_, err = as.uc.Authenticate(as.ctx, "not-a-token")
	ce = as.requireStatus(err, http.StatusUnauthorized)
	as.Equal("Could not validate credentials", ce.Err.Error())
}

func (as *AuthSuite) TestRefresh() {
	tok, err := as.uc.Login(as.ctx, "joao@x.com", "secret12")
	as.Require().NoError(err)
	as.now = as.now.Add(10 * time.Minute)
	fresh, err := as.uc.Refresh(as.ctx, tok.Access)
	as.Require().NoError(err)
	as.NotEqual(tok.ID, fresh.ID)
	as.True(fresh.ExpiresAt.After(tok.ExpiresAt))

	// refresh does not consult the credential store
	as.db.Fail(errors.New("db is down"))
	_, err = as.uc.Refresh(as.ctx, fresh.Access)
	as.NoError(err)
	_, err = as.uc.Authenticate(as.ctx, tok.Access)
	as.NoError(err, "old token remains valid")
}

func (as *AuthSuite) TestLogoutRevokesToken() {
	tok, err := as.uc.Login(as.ctx, "joao@x.com", "secret12")
	as.Require().NoError(err)
	as.now = as.now.Add(5 * time.Minute)
	as.Require().NoError(as.uc.Logout(as.ctx, tok.Access))
	as.Equal(25*time.Minute, as.denylist.revoked[tok.ID])

	_, err = as.uc.Authenticate(as.ctx, tok.Access)
	ce := as.requireStatus(err, http.StatusUnauthorized)
	as.ErrorIs(ce, cerr.ErrTokenInvalid)
	_, err = as.uc.Refresh(as.ctx, tok.Access)
	as.requireStatus(err, http.StatusUnauthorized)
	err = as.uc.Logout(as.ctx, tok.Access)
	as.requireStatus(err, http.StatusUnauthorized)
}

func (as *AuthSuite) TestDenylistFailure() {
	tok, err := as.uc.Login(as.ctx, "joao@x.com", "secret12")
	as.Require().NoError(err)
	as.denylist.err = errors.New("redis is down")
	_, err = as.uc.Authenticate(as.ctx, tok.Access)
	as.ErrorIs(err, as.denylist.err)
	var ce *cerr.Error
	as.False(errors.As(err, &ce))
}

func (as *AuthSuite) TestLogoutWithoutDenylist() {
	codec, err := jwt.New([]byte("0123456789abcdef0123456789abcdef"), time.Minute)
	as.Require().NoError(err)
	uc, err := authuc.New(as.db.Pool(), fake.Users{}, as.hasher, codec)
	as.Require().NoError(err)
	tok, err := uc.Login(as.ctx, "joao@x.com", "secret12")
	as.Require().NoError(err)
	as.NoError(uc.Logout(as.ctx, tok.Access))
	_, err = uc.Authenticate(as.ctx, tok.Access)
	as.NoError(err)
	as.Error(uc.Logout(as.ctx, "garbage"))
}

func (as *AuthSuite) TestOptionsValidation() {
	codec, err := jwt.New([]byte("0123456789abcdef0123456789abcdef"), time.Minute)
	as.Require().NoError(err)
	_, err = authuc.New(
		as.db.Pool(), fake.Users{}, as.hasher, codec,
		authuc.WithDenylist(as.denylist), authuc.WithDenylist(as.denylist),
	)
	as.Error(err)
	_, err = authuc.New(
		as.db.Pool(), fake.Users{}, as.hasher, codec, authuc.WithClock(nil),
	)
	as.Error(err)
}
