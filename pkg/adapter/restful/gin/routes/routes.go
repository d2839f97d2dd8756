// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-api/pkg/adapter/config/cfg1"
	"github.com/momeni/car-api/pkg/adapter/db/postgres/brandsrp"
	"github.com/momeni/car-api/pkg/adapter/db/postgres/carsrp"
	"github.com/momeni/car-api/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/car-api/pkg/adapter/kv"
	"github.com/momeni/car-api/pkg/adapter/restful/gin/authrs"
	"github.com/momeni/car-api/pkg/adapter/restful/gin/brandsrs"
	"github.com/momeni/car-api/pkg/adapter/restful/gin/carsrs"
	"github.com/momeni/car-api/pkg/adapter/restful/gin/usersrs"
	"github.com/momeni/car-api/pkg/core/log"
	"github.com/momeni/car-api/pkg/core/repo"
	"github.com/momeni/car-api/pkg/core/usecase/appuc"
)

// Prefix is the common path prefix of all resources.
const Prefix = "/api/v1"

// Register instantiates the PostgreSQL repositories and the use cases
// based on the c configuration settings. The p connections pool is
// passed to the use case instances, so they may acquire and release
// connections and transactions on demand. Each use case package is
// named like carsuc and each repository package is named like carsrp.
// Thereafter, Mount registers the resources on the e engine.
// Actual instantiation of use case objects are delegated to the
// c Config instance and the appuc use case.
func Register(
	ctx context.Context, e *gin.Engine, p repo.Pool, c *cfg1.Config,
) error {
	app, err := appuc.New(p, appuc.Repos{
		Users:  usersrp.New(),
		Brands: brandsrp.New(),
		Cars:   carsrp.New(),
	}, c)
	if err != nil {
		return fmt.Errorf("creating application use case: %w", err)
	}
	limiter, err := c.LoginLimiter(ctx)
	if err != nil {
		return fmt.Errorf("creating login limiter: %w", err)
	}
	Mount(e, app, limiter)
	return nil
}

// Mount registers the health check and all resources of app on the
// e engine. Login attempts are throttled by limiter unless it is nil.
func Mount(e *gin.Engine, app *appuc.UseCase, limiter kv.Limiter) {
	e.GET("/healthz", func(c *gin.Context) {
		if err := app.Health(c); err != nil {
			log.Warn(c, "health check failed", log.Err(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"detail": "database is not reachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r := e.Group(Prefix)
	auth := app.AuthUseCase()
	bearer := authrs.Bearer(auth)
	authrs.Register(r, auth, limiter)
	usersrs.Register(r, app.UsersUseCase(), bearer)
	brandsrs.Register(r, app.BrandsUseCase(), bearer)
	carsrs.Register(r, app.CarsUseCase(), bearer)
}
