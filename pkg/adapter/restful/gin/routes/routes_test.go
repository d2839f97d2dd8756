// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package routes_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/car-api/internal/test/fake"
	"github.com/momeni/car-api/pkg/adapter/hash/argon2id"
	"github.com/momeni/car-api/pkg/adapter/kv/memory"
	"github.com/momeni/car-api/pkg/adapter/restful/gin"
	"github.com/momeni/car-api/pkg/adapter/restful/gin/routes"
	"github.com/momeni/car-api/pkg/adapter/token/jwt"
	"github.com/momeni/car-api/pkg/core/guard"
	"github.com/momeni/car-api/pkg/core/passwd"
	"github.com/momeni/car-api/pkg/core/repo"
	"github.com/momeni/car-api/pkg/core/token"
	"github.com/momeni/car-api/pkg/core/usecase/appuc"
	"github.com/momeni/car-api/pkg/core/usecase/authuc"
	"github.com/momeni/car-api/pkg/core/usecase/brandsuc"
	"github.com/momeni/car-api/pkg/core/usecase/carsuc"
	"github.com/momeni/car-api/pkg/core/usecase/usersuc"
	"github.com/stretchr/testify/suite"
)

type builder struct {
	hasher   passwd.Hasher
	codec    token.Codec
	denylist token.Denylist
}

func (b *builder) NewAuthUseCase(p repo.Pool, r repo.Users) (*authuc.UseCase, error) {
	return authuc.New(p, r, b.hasher, b.codec, authuc.WithDenylist(b.denylist))
}

func (b *builder) NewUsersUseCase(p repo.Pool, r repo.Users, g *guard.Guard) (*usersuc.UseCase, error) {
	return usersuc.New(p, r, g, b.hasher)
}

func (b *builder) NewBrandsUseCase(p repo.Pool, r repo.Brands, g *guard.Guard) (*brandsuc.UseCase, error) {
	return brandsuc.New(p, r, g)
}

func (b *builder) NewCarsUseCase(p repo.Pool, r repo.Cars, g *guard.Guard) (*carsuc.UseCase, error) {
	return carsuc.New(p, r, g)
}

type RoutesSuite struct {
	suite.Suite

	Pool *fake.Pool
	Gin  *gin.Engine
}

func TestRoutesSuite(t *testing.T) {
	gin.SetMode("test")
	suite.Run(t, new(RoutesSuite))
}

func (rs *RoutesSuite) SetupTest() {
	h, err := argon2id.New(argon2id.Params{
		Memory: 1024, Iterations: 1, Parallelism: 1,
		SaltLength: 16, KeyLength: 32,
	})
	rs.Require().NoError(err)
	c, err := jwt.New(bytes.Repeat([]byte("k"), jwt.MinSecretLength), 30*time.Minute)
	rs.Require().NoError(err)
	rs.Pool = fake.New().Pool()
	app, err := appuc.New(rs.Pool, appuc.Repos{
		Users:  fake.Users{},
		Brands: fake.Brands{},
		Cars:   fake.Cars{},
	}, &builder{hasher: h, codec: c, denylist: memory.NewDenylist()})
	rs.Require().NoError(err)
	limiter, err := memory.NewLimiter(3, 0)
	rs.Require().NoError(err)
	rs.Gin = gin.New(gin.RequestID(), gin.Recovery())
	routes.Mount(rs.Gin, app, limiter)
}

func (rs *RoutesSuite) do(method, path, tok string, body any) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		rs.Require().NoError(err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, routes.Prefix+path, r)
	req.RemoteAddr = "192.0.2.1:4321"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	rs.Gin.ServeHTTP(w, req)
	return w
}

func (rs *RoutesSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	m := map[string]any{}
	rs.Require().NoError(json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func (rs *RoutesSuite) signUp(username, email string) int64 {
	w := rs.do(http.MethodPost, "/users/", "", map[string]any{
		"username": username,
		"email":    email,
		"password": "secret123",
	})
	rs.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return int64(rs.decode(w)["id"].(float64))
}

func (rs *RoutesSuite) login(email, password string) *httptest.ResponseRecorder {
	return rs.do(http.MethodPost, "/auth/token", "", map[string]any{
		"email":    email,
		"password": password,
	})
}

func (rs *RoutesSuite) token(email string) string {
	w := rs.login(email, "secret123")
	rs.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	return rs.decode(w)["access_token"].(string)
}

func (rs *RoutesSuite) TestSignUpLoginAndListBrands() {
	w := rs.do(http.MethodPost, "/users/", "", map[string]any{
		"username": "joao",
		"email":    "joao@example.com",
		"password": "secret123",
	})
	rs.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	u := rs.decode(w)
	rs.Positive(u["id"])
	rs.Equal("joao", u["username"])
	rs.NotEmpty(u["created_at"])
	rs.NotContains(u, "password")
	rs.NotContains(w.Body.String(), "argon2id")

	w = rs.login("joao@example.com", "secret123")
	rs.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	res := rs.decode(w)
	rs.Equal("bearer", res["token_type"])
	tok := res["access_token"].(string)

	w = rs.do(http.MethodGet, "/brands/", "", nil)
	rs.Equal(http.StatusUnauthorized, w.Code)
	rs.Equal("Bearer", w.Header().Get("WWW-Authenticate"))
	rs.Equal("Not authenticated", rs.decode(w)["detail"])

	w = rs.do(http.MethodGet, "/brands/", tok, nil)
	rs.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	rs.Equal(map[string]any{
		"brands": []any{}, "offset": 0.0, "limit": 100.0,
	}, rs.decode(w))
}

func (rs *RoutesSuite) TestLoginFailuresLookAlike() {
	rs.signUp("joao", "joao@example.com")
	unknown := rs.login("nobody@example.com", "secret123")
	wrong := rs.login("joao@example.com", "secret124")
	rs.Equal(http.StatusUnauthorized, unknown.Code)
	rs.Equal(http.StatusUnauthorized, wrong.Code)
	rs.Equal(unknown.Body.String(), wrong.Body.String())
	rs.Equal("Incorrect email or password", rs.decode(wrong)["detail"])
}

func (rs *RoutesSuite) TestLoginIsThrottled() {
	for i := 0; i < 3; i++ {
		w := rs.login("nobody@example.com", "secret123")
		rs.Equal(http.StatusUnauthorized, w.Code, "attempt %d", i)
	}
	w := rs.login("nobody@example.com", "secret123")
	rs.Equal(http.StatusTooManyRequests, w.Code)
	rs.Equal("too many login attempts", rs.decode(w)["detail"])
}

func (rs *RoutesSuite) TestBadTokens() {
	for name, header := range map[string]string{
		"garbage": "Bearer not-a-token",
		"scheme":  "Basic am9hbzpzZWNyZXQ=",
		"empty":   "Bearer ",
	} {
		rs.Run(name, func() {
			req := httptest.NewRequest(http.MethodGet, routes.Prefix+"/cars/", nil)
			req.Header.Set("Authorization", header)
			w := httptest.NewRecorder()
			rs.Gin.ServeHTTP(w, req)
			rs.Equal(http.StatusUnauthorized, w.Code)
			rs.Equal("Bearer", w.Header().Get("WWW-Authenticate"))
		})
	}
}

func (rs *RoutesSuite) TestRefreshAndLogout() {
	rs.signUp("joao", "joao@example.com")
	tok := rs.token("joao@example.com")

	w := rs.do(http.MethodPost, "/auth/refresh_token", tok, nil)
	rs.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	fresh := rs.decode(w)["access_token"].(string)
	rs.NotEqual(tok, fresh)

	w = rs.do(http.MethodPost, "/auth/logout", tok, nil)
	rs.Require().Equal(http.StatusNoContent, w.Code, w.Body.String())

	w = rs.do(http.MethodGet, "/brands/", tok, nil)
	rs.Equal(http.StatusUnauthorized, w.Code)
	rs.Equal("Could not validate credentials", rs.decode(w)["detail"])

	w = rs.do(http.MethodGet, "/brands/", fresh, nil)
	rs.Equal(http.StatusOK, w.Code, "other tokens stay valid")
}

func (rs *RoutesSuite) TestCarWithDuplicatePlate() {
	owner := rs.signUp("joao", "joao@example.com")
	tok := rs.token("joao@example.com")

	w := rs.do(http.MethodPost, "/brands/", tok, map[string]any{
		"name": "Toyota",
	})
	rs.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	brand := rs.decode(w)
	rs.Equal(true, brand["is_active"])

	car := map[string]any{
		"model":        "Corolla",
		"factory_year": 2020,
		"model_year":   2021,
		"color":        "Silver",
		"plate":        "abc1234",
		"fuel_type":    "flex",
		"transmission": "automatic",
		"price":        25000,
		"brand_id":     brand["id"],
		"owner_id":     owner,
	}
	w = rs.do(http.MethodPost, "/cars/", tok, car)
	rs.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	created := rs.decode(w)
	rs.Equal("ABC1234", created["plate"])
	rs.Equal("25000.00", created["price"])
	rs.Equal("flex", created["fuel_type"])
	rs.Equal("Toyota", created["brand"].(map[string]any)["name"])
	rs.Equal("joao", created["owner"].(map[string]any)["username"])
	rs.NotContains(created["owner"], "password")

	w = rs.do(http.MethodPost, "/cars/", tok, car)
	rs.Equal(http.StatusBadRequest, w.Code)
	rs.Equal("plate is already in use", rs.decode(w)["detail"])

	w = rs.do(http.MethodGet, "/cars/?fuel_type=flex&min_price=20000", tok, nil)
	rs.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	rs.Len(rs.decode(w)["cars"], 1)

	w = rs.do(http.MethodDelete, "/brands/"+jsonNumber(brand["id"]), tok, nil)
	rs.Equal(http.StatusBadRequest, w.Code)
	rs.Equal("cannot delete a record which has cars", rs.decode(w)["detail"])
}

func (rs *RoutesSuite) TestValidationErrors() {
	w := rs.do(http.MethodPost, "/users/", "", map[string]any{
		"username": "jo",
		"email":    "joao@example.com",
		"password": "123",
	})
	rs.Require().Equal(http.StatusUnprocessableEntity, w.Code, w.Body.String())
	res := rs.decode(w)
	rs.Contains(res, "username")
	rs.Contains(res, "password")

	rs.signUp("joao", "joao@example.com")
	tok := rs.token("joao@example.com")
	w = rs.do(http.MethodPost, "/cars/", tok, map[string]any{
		"model":        "Corolla",
		"factory_year": 2020,
		"model_year":   2021,
		"color":        "Silver",
		"plate":        "ABC1234",
		"fuel_type":    "coal",
		"transmission": "automatic",
		"price":        "12.345",
		"brand_id":     1,
		"owner_id":     1,
	})
	rs.Require().Equal(http.StatusUnprocessableEntity, w.Code, w.Body.String())
	res = rs.decode(w)
	rs.Contains(res, "fuel_type")
	rs.Contains(res, "price")

	w = rs.do(http.MethodGet, "/users/?limit=0", "", nil)
	rs.Equal(http.StatusUnprocessableEntity, w.Code)
	w = rs.do(http.MethodGet, "/users/?limit=101", "", nil)
	rs.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (rs *RoutesSuite) TestNotFound() {
	w := rs.do(http.MethodGet, "/users/999", "", nil)
	rs.Equal(http.StatusNotFound, w.Code)
	rs.Equal("user not found", rs.decode(w)["detail"])

	rs.signUp("joao", "joao@example.com")
	tok := rs.token("joao@example.com")
	w = rs.do(http.MethodDelete, "/cars/999", tok, nil)
	rs.Equal(http.StatusNotFound, w.Code)
	rs.Equal("car not found", rs.decode(w)["detail"])
}

func (rs *RoutesSuite) TestHealth() {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	rs.Gin.ServeHTTP(w, req)
	rs.Equal(http.StatusOK, w.Code)
	rs.NotEmpty(w.Header().Get(gin.RequestIDHeader))

	rs.Require().NoError(rs.Pool.Close())
	w = httptest.NewRecorder()
	rs.Gin.ServeHTTP(w, req)
	rs.Equal(http.StatusServiceUnavailable, w.Code)
}

func jsonNumber(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
