// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/goccy/go-json"
	"github.com/momeni/car-api/internal/test/dbcontainer"
	"github.com/momeni/car-api/pkg/adapter/config/cfg1"
	"github.com/momeni/car-api/pkg/adapter/db/postgres"
	"github.com/momeni/car-api/pkg/adapter/restful/gin"
	"github.com/momeni/car-api/pkg/adapter/restful/gin/routes"
	"github.com/momeni/car-api/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

const testConfig = `versions:
  config: 1.0.0
auth:
  secret: 0123456789abcdef0123456789abcdef
  argon2:
    memory: 1024
    iterations: 1
    parallelism: 1
ratelimit:
  login-per-minute: 0
`

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Gin  *gin.Engine
	Cfg  *cfg1.Config
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	gin.SetMode("test")
	c, err := cfg1.Load([]byte(testConfig))
	igts.Require().NoError(err, "failed to load test configs")
	igts.Cfg = c
	igts.Gin = gin.New(gin.RequestID(), gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	err = routes.Register(igts.Ctx, igts.Gin, igts.Pool, c)
	igts.Require().NoError(err, "failed to register Gin routes")
}

func (igts *IntegrationGinTestSuite) TearDownSuite() {
	igts.NoError(igts.Cfg.Close())
}

func (igts *IntegrationGinTestSuite) SetupTest() {
	err := igts.Pool.Conn(igts.Ctx, func(ctx context.Context, c repo.Conn) error {
		_, err := c.Exec(ctx, "TRUNCATE cars, brands, users RESTART IDENTITY")
		return err
	})
	igts.Require().NoError(err, "failed to truncate tables")
}

func (igts *IntegrationGinTestSuite) do(
	method, path, tok string, body any,
) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		igts.Require().NoError(err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, routes.Prefix+path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	return w
}

func (igts *IntegrationGinTestSuite) decode(
	w *httptest.ResponseRecorder,
) map[string]any {
	m := map[string]any{}
	err := json.Unmarshal(w.Body.Bytes(), &m)
	igts.Require().NoError(err, w.Body.String())
	return m
}

func (igts *IntegrationGinTestSuite) signUp(username, email string) int64 {
	w := igts.do(http.MethodPost, "/users/", "", map[string]any{
		"username": username,
		"email":    email,
		"password": "secret123",
	})
	igts.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return int64(igts.decode(w)["id"].(float64))
}

// token logs in with a form body, as OAuth2 password flow clients do.
func (igts *IntegrationGinTestSuite) token(email string) string {
	form := url.Values{"username": {email}, "password": {"secret123"}}
	req := httptest.NewRequest(
		http.MethodPost, routes.Prefix+"/auth/token",
		strings.NewReader(form.Encode()),
	)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	igts.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	res := igts.decode(w)
	igts.Equal("bearer", res["token_type"])
	return res["access_token"].(string)
}

func (igts *IntegrationGinTestSuite) TestSignUpAndLogin() {
	w := igts.do(http.MethodPost, "/users/", "", map[string]any{
		"username": "joao",
		"email":    "joao@example.com",
		"password": "secret123",
	})
	igts.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	u := igts.decode(w)
	igts.Equal(1.0, u["id"])
	igts.Equal("joao@example.com", u["email"])
	igts.NotEmpty(u["created_at"])
	igts.NotContains(u, "password")

	w = igts.do(http.MethodPost, "/users/", "", map[string]any{
		"username": "joao",
		"email":    "other@example.com",
		"password": "secret123",
	})
	igts.Equal(http.StatusBadRequest, w.Code)

	tok := igts.token("joao@example.com")
	w = igts.do(http.MethodGet, "/brands/", "", nil)
	igts.Equal(http.StatusUnauthorized, w.Code)
	w = igts.do(http.MethodGet, "/brands/", tok, nil)
	igts.Equal(http.StatusOK, w.Code, w.Body.String())

	w = igts.do(http.MethodPost, "/auth/logout", tok, nil)
	igts.Require().Equal(http.StatusNoContent, w.Code, w.Body.String())
	w = igts.do(http.MethodGet, "/brands/", tok, nil)
	igts.Equal(http.StatusUnauthorized, w.Code)
}

func (igts *IntegrationGinTestSuite) TestCarsLifecycle() {
	owner := igts.signUp("joao", "joao@example.com")
	tok := igts.token("joao@example.com")
	w := igts.do(http.MethodPost, "/brands/", tok, map[string]any{
		"name":        "Toyota",
		"description": "Japanese manufacturer",
	})
	igts.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	brandID := int64(igts.decode(w)["id"].(float64))

	car := map[string]any{
		"model":        "Corolla",
		"factory_year": 2020,
		"model_year":   2021,
		"color":        "Silver",
		"plate":        "ABC1234",
		"fuel_type":    "gasoline",
		"transmission": "manual",
		"price":        "25000.5",
		"brand_id":     brandID,
		"owner_id":     owner,
	}
	w = igts.do(http.MethodPost, "/cars/", tok, car)
	igts.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	created := igts.decode(w)
	igts.Equal("25000.50", created["price"])
	igts.Equal(true, created["is_available"])
	igts.Equal("Toyota", created["brand"].(map[string]any)["name"])
	igts.Equal("joao", created["owner"].(map[string]any)["username"])
	carPath := "/cars/" + strconv.FormatInt(int64(created["id"].(float64)), 10)

	w = igts.do(http.MethodPost, "/cars/", tok, car)
	igts.Equal(http.StatusBadRequest, w.Code)
	igts.Equal("plate is already in use", igts.decode(w)["detail"])

	car["brand_id"] = brandID + 100
	w = igts.do(http.MethodPost, "/cars/", tok, car)
	igts.Equal(http.StatusBadRequest, w.Code)
	igts.Equal(
		"plate is already in use", igts.decode(w)["detail"],
		"plate conflict is reported before the missing brand",
	)

	w = igts.do(http.MethodPut, carPath, tok, map[string]any{
		"price": 19999.99, "is_available": false,
	})
	igts.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	igts.Equal("19999.99", igts.decode(w)["price"])

	w = igts.do(http.MethodGet, "/cars/?search=coro&is_available=false", tok, nil)
	igts.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	igts.Len(igts.decode(w)["cars"], 1)
	w = igts.do(http.MethodGet, "/cars/?max_price=10000", tok, nil)
	igts.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	igts.Empty(igts.decode(w)["cars"])

	brandPath := "/brands/" + strconv.FormatInt(brandID, 10)
	w = igts.do(http.MethodDelete, brandPath, tok, nil)
	igts.Equal(http.StatusBadRequest, w.Code)
	w = igts.do(http.MethodDelete, "/users/"+strconv.FormatInt(owner, 10), tok, nil)
	igts.Equal(http.StatusBadRequest, w.Code)

	w = igts.do(http.MethodDelete, carPath, tok, nil)
	igts.Require().Equal(http.StatusNoContent, w.Code, w.Body.String())
	w = igts.do(http.MethodGet, carPath, tok, nil)
	igts.Equal(http.StatusNotFound, w.Code)
	igts.Equal("car not found", igts.decode(w)["detail"])
	w = igts.do(http.MethodDelete, brandPath, tok, nil)
	igts.Equal(http.StatusNoContent, w.Code, w.Body.String())
}

func (igts *IntegrationGinTestSuite) TestHealth() {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	igts.Equal(http.StatusOK, w.Code)
	igts.Equal("ok", igts.decode(w)["status"])
	igts.NotEmpty(w.Header().Get(gin.RequestIDHeader))
}
