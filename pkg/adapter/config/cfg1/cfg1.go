// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cfg1 makes it possible to load configuration settings with
// version 1.x.y since all minor and patch versions (which are known)
// with the same major version, can be loaded with one implementation.
// The Config struct of this package also acts as the builder of the
// use cases (see appuc.Builder) and as the migrationuc.SchemaSettings,
// so the database schema can be initialized and migrated.
package cfg1

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/momeni/car-api/pkg/adapter/config/vers"
	"github.com/momeni/car-api/pkg/adapter/kv"
	"github.com/momeni/car-api/pkg/adapter/kv/memory"
	"github.com/momeni/car-api/pkg/adapter/kv/redis"
	"github.com/momeni/car-api/pkg/core/guard"
	"github.com/momeni/car-api/pkg/core/model"
	"github.com/momeni/car-api/pkg/core/repo"
	"github.com/momeni/car-api/pkg/core/token"
	"github.com/momeni/car-api/pkg/core/usecase/authuc"
	"github.com/momeni/car-api/pkg/core/usecase/brandsuc"
	"github.com/momeni/car-api/pkg/core/usecase/carsuc"
	"github.com/momeni/car-api/pkg/core/usecase/usersuc"
	goredis "github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// These constants define the major, minor, and patch version of the
// configuration settings which are supported by the Config struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of Config struct.
var Version = model.SemVer{Major, Minor, Patch}

// SecretEnv is the environment variable which overrides the configured
// tokens signing secret.
const SecretEnv = "CARAPI_AUTH_SECRET"

// redisDialTimeout bounds the initial ping of a lazily created client.
const redisDialTimeout = 5 * time.Second

// Config contains all settings which are required by different parts
// of the project following the v1.x.y format, such as adapters or
// use cases. It is preferred to implement Config with primitive fields
// or other structs which are defined locally, not models or structs
// which are defined in lower layers, so the configuration can be
// versioned and kept intact while other layers can change freely.
type Config struct {
	Database  Database  // PostgreSQL database connection settings
	Gin       Gin       // Gin-Gonic instantiation settings
	Logging   Logging   // slog handler settings
	Auth      Auth      // tokens and password hashing settings
	Redis     Redis     // optional redis server for denylist/limiter
	RateLimit RateLimit `yaml:"ratelimit"` // login throttling
	Usecases  Usecases  // Configuration settings for supported use cases

	// Vers contains the configuration file version.
	Vers vers.Config `yaml:",inline"`

	denylistOnce sync.Once
	denylist     token.Denylist
	denylistErr  error

	redisMu sync.Mutex
	redis   *goredis.Client
}

// Load unmarshals the data byte slice and loads a Config instance
// assuming that it contains the Config settings. Extra items in the
// data will be ignored and missing items will take their default
// values. The SecretEnv environment variable, if set, replaces the
// tokens secret. Thereafter, loaded Config will be validated and
// normalized in order to ensure that provided settings are acceptable
// (for example the major version which is reported by data settings
// must match with number 1 which is the major version of this package).
func Load(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if s, ok := os.LookupEnv(SecretEnv); ok {
		c.Auth.Secret = s
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values with
// their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	if err := c.Vers.Validate(Version); err != nil {
		return fmt.Errorf("config version: %w", err)
	}
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	c.Gin.validateAndNormalize()
	if err := c.Logging.validateAndNormalize(); err != nil {
		return fmt.Errorf("validating logging settings: %w", err)
	}
	if err := c.Auth.validateAndNormalize(); err != nil {
		return fmt.Errorf("validating auth settings: %w", err)
	}
	if err := c.RateLimit.validateAndNormalize(); err != nil {
		return fmt.Errorf("validating ratelimit settings: %w", err)
	}
	if err := c.Usecases.Lists.validateAndNormalize(); err != nil {
		return fmt.Errorf("validating list settings: %w", err)
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx, r)
	if err != nil {
		return nil, fmt.Errorf(
			"connecting to %q as %q: %w", c.Database.Name, r, err,
		)
	}
	return p, nil
}

// ConnectionInfo returns the host, port, and database name of the
// connection information which are kept in this Config instance.
func (c *Config) ConnectionInfo() (dbName, host string, port int) {
	return c.Database.ConnectionInfo()
}

// SchemaName returns the name of the application schema.
func (c *Config) SchemaName() string {
	return c.Database.Schema
}

// NewSchemaRepo instantiates a fresh Schema repository.
func (c *Config) NewSchemaRepo() repo.Schema {
	return c.Database.NewSchemaRepo()
}

// SchemaMigrator creates a migrator for the application schema which
// connects as the normal role. Caller must close it.
func (c *Config) SchemaMigrator(
	ctx context.Context,
) (repo.SchemaMigrator, error) {
	return c.Database.SchemaMigrator(ctx)
}

// RenewPasswords generates new secure passwords for the given roles
// and after recording them in the .pgpass.new file, will use the change
// function in order to update the passwords of those roles in the
// database too. See Database.RenewPasswords for details.
func (c *Config) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	return c.Database.RenewPasswords(ctx, change, roles...)
}

// NewAuthUseCase creates the auth use case with the configured password
// hasher and token codec. Tokens are revoked in the denylist which is
// kept in redis (if configured) or in memory, unless denylist is off.
func (c *Config) NewAuthUseCase(
	p repo.Pool, r repo.Users,
) (*authuc.UseCase, error) {
	opts := make([]authuc.Option, 0, 1)
	if *c.Auth.Denylist {
		d, err := c.tokensDenylist()
		if err != nil {
			return nil, fmt.Errorf("creating tokens denylist: %w", err)
		}
		opts = append(opts, authuc.WithDenylist(d))
	}
	return authuc.New(p, r, c.Auth.hasher, c.Auth.codec, opts...)
}

// NewUsersUseCase creates the users use case, sharing the password
// hasher of the auth use case.
func (c *Config) NewUsersUseCase(
	p repo.Pool, r repo.Users, g *guard.Guard,
) (*usersuc.UseCase, error) {
	opts := make([]usersuc.Option, 0, 1)
	if l := c.Usecases.Lists; l.MaxLimit != nil {
		opts = append(opts, usersuc.WithListLimits(
			*l.DefaultLimit, *l.MaxLimit,
		))
	}
	return usersuc.New(p, r, g, c.Auth.hasher, opts...)
}

// NewBrandsUseCase creates the brands use case.
func (c *Config) NewBrandsUseCase(
	p repo.Pool, r repo.Brands, g *guard.Guard,
) (*brandsuc.UseCase, error) {
	opts := make([]brandsuc.Option, 0, 1)
	if l := c.Usecases.Lists; l.MaxLimit != nil {
		opts = append(opts, brandsuc.WithListLimits(
			*l.DefaultLimit, *l.MaxLimit,
		))
	}
	return brandsuc.New(p, r, g, opts...)
}

// NewCarsUseCase creates the cars use case.
func (c *Config) NewCarsUseCase(
	p repo.Pool, r repo.Cars, g *guard.Guard,
) (*carsuc.UseCase, error) {
	opts := make([]carsuc.Option, 0, 1)
	if l := c.Usecases.Lists; l.MaxLimit != nil {
		opts = append(opts, carsuc.WithListLimits(
			*l.DefaultLimit, *l.MaxLimit,
		))
	}
	return carsuc.New(p, r, g, opts...)
}

// LoginLimiter returns the limiter of login attempts. A redis limiter
// is returned if redis is configured, so all server instances share
// their counters. Otherwise, an in-memory limiter is returned. A nil
// limiter is returned if throttling is disabled.
func (c *Config) LoginLimiter(ctx context.Context) (kv.Limiter, error) {
	n := *c.RateLimit.LoginPerMinute
	if n == 0 {
		return nil, nil
	}
	if c.Redis.Address == "" {
		l, err := memory.NewLimiter(n, c.RateLimit.Burst)
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	rc, err := c.redisClient(ctx)
	if err != nil {
		return nil, err
	}
	l, err := redis.NewLimiter(rc, c.Redis.Prefix, n, time.Minute)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Close releases the redis client (if any was created).
func (c *Config) Close() error {
	c.redisMu.Lock()
	defer c.redisMu.Unlock()
	if c.redis == nil {
		return nil
	}
	err := c.redis.Close()
	c.redis = nil
	return err
}

func (c *Config) tokensDenylist() (token.Denylist, error) {
	c.denylistOnce.Do(func() {
		if c.Redis.Address == "" {
			c.denylist = memory.NewDenylist()
			return
		}
		ctx, cancel := context.WithTimeout(
			context.Background(), redisDialTimeout,
		)
		defer cancel()
		rc, err := c.redisClient(ctx)
		if err != nil {
			c.denylistErr = err
			return
		}
		c.denylist = redis.NewDenylist(rc, c.Redis.Prefix)
	})
	return c.denylist, c.denylistErr
}

func (c *Config) redisClient(ctx context.Context) (*goredis.Client, error) {
	c.redisMu.Lock()
	defer c.redisMu.Unlock()
	if c.redis != nil {
		return c.redis, nil
	}
	rc, err := redis.NewClient(
		ctx, c.Redis.Address, c.Redis.Password, c.Redis.DB,
	)
	if err != nil {
		return nil, err
	}
	c.redis = rc
	return rc, nil
}
