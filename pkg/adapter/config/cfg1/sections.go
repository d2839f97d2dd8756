// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/momeni/car-api/pkg/adapter/config/settings"
	"github.com/momeni/car-api/pkg/adapter/hash/argon2id"
	"github.com/momeni/car-api/pkg/adapter/restful/gin"
	"github.com/momeni/car-api/pkg/adapter/token/jwt"
	"github.com/momeni/car-api/pkg/core/model"
)

// Default values of the optional settings.
const (
	DefaultAddress         = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultTokenTTL        = 30 * time.Minute
	DefaultLoginPerMinute  = 5
)

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized. Those items can be detected as nil
// pointers and filled by their default values by ValidateAndNormalize.
type Gin struct {
	Logger   *bool  // Whether to register the ginslog access logger
	Recovery *bool  // Whether to register the recovery middleware
	Address  string // listening address, like :8080

	// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
	ShutdownTimeout *settings.Duration `yaml:"shutdown-timeout"`
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings. Request ids are always assigned and access logs
// are written with the `l` logger.
func (g Gin) NewEngine(l *slog.Logger) *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 3)
	middlewares = append(middlewares, gin.RequestID())
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger(l))
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

func (g *Gin) validateAndNormalize() {
	settings.Default(&g.Logger, false)
	settings.Default(&g.Recovery, false)
	if g.Address == "" {
		g.Address = DefaultAddress
	}
	settings.Default(&g.ShutdownTimeout, settings.Duration(DefaultShutdownTimeout))
}

// Logging contains the log/slog handler settings.
type Logging struct {
	Level  string // debug, info, warn, or error (default is info)
	Format string // text or json (default is text)

	level slog.Level
}

// NewLogger creates a logger which writes its records to w.
func (lg Logging) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lg.level}
	if lg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (lg *Logging) validateAndNormalize() error {
	if lg.Level == "" {
		lg.Level = "info"
	}
	if err := lg.level.UnmarshalText([]byte(lg.Level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch lg.Format = strings.ToLower(lg.Format); lg.Format {
	case "":
		lg.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %q", lg.Format)
	}
	return nil
}

// Auth contains the tokens and password hashing settings.
type Auth struct {
	// Secret is the HMAC signing key of tokens. The CARAPI_AUTH_SECRET
	// environment variable overrides it.
	Secret string `yaml:"secret,omitempty"`

	// TokenTTL is the lifetime of the issued tokens.
	TokenTTL *settings.Duration `yaml:"token-ttl"`
	// MinTokenTTL is the inclusive minimum acceptable value for the
	// TokenTTL setting. A missing value indicates no lower bound.
	MinTokenTTL *settings.Duration `yaml:"token-ttl-minimum"`
	// MaxTokenTTL is the inclusive maximum acceptable value for the
	// TokenTTL setting. A missing value indicates no upper bound.
	MaxTokenTTL *settings.Duration `yaml:"token-ttl-maximum"`

	// Denylist enables revocation of tokens on logout (default true).
	Denylist *bool

	Argon2 Argon2

	hasher *argon2id.Hasher
	codec  *jwt.Codec
}

// Argon2 overrides the argon2id.DefaultParams cost parameters.
type Argon2 struct {
	Memory      *uint32 // KiB
	Iterations  *uint32
	Parallelism *uint8
}

func (a *Auth) validateAndNormalize() error {
	settings.Default(&a.TokenTTL, settings.Duration(DefaultTokenTTL))
	if err := settings.VerifyRange(
		"token-ttl", a.TokenTTL, a.MinTokenTTL, a.MaxTokenTTL,
	); err != nil {
		return err
	}
	settings.Default(&a.Denylist, true)
	p := argon2id.DefaultParams
	settings.Default(&a.Argon2.Memory, p.Memory)
	settings.Default(&a.Argon2.Iterations, p.Iterations)
	settings.Default(&a.Argon2.Parallelism, p.Parallelism)
	p.Memory = *a.Argon2.Memory
	p.Iterations = *a.Argon2.Iterations
	p.Parallelism = *a.Argon2.Parallelism
	h, err := argon2id.New(p)
	if err != nil {
		return fmt.Errorf("argon2 params: %w", err)
	}
	c, err := jwt.New([]byte(a.Secret), a.TokenTTL.Std())
	if err != nil {
		return fmt.Errorf("token codec: %w", err)
	}
	a.hasher, a.codec = h, c
	return nil
}

// Redis contains the optional redis connection settings. An empty
// Address keeps the denylist and the login limiter in memory.
type Redis struct {
	Address  string
	Password string `yaml:"password,omitempty"`
	DB       int
	Prefix   string `yaml:"prefix,omitempty"` // keys prefix, like carapi
}

// RateLimit contains the login throttling settings.
type RateLimit struct {
	// LoginPerMinute is the number of login attempts which are allowed
	// per client address per minute. Zero disables the throttling.
	LoginPerMinute *int `yaml:"login-per-minute"`
	// Burst is the token bucket size of the in-memory limiter. Zero
	// means LoginPerMinute.
	Burst int
}

func (rl *RateLimit) validateAndNormalize() error {
	settings.Default(&rl.LoginPerMinute, DefaultLoginPerMinute)
	if *rl.LoginPerMinute < 0 || rl.Burst < 0 {
		return fmt.Errorf(
			"negative login rate (%d) or burst (%d)",
			*rl.LoginPerMinute, rl.Burst,
		)
	}
	return nil
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Lists Lists // page limits of all list use cases
}

// Lists contains the page limits of the list use cases.
type Lists struct {
	// DefaultLimit is used when a request does not ask for a limit.
	DefaultLimit *int `yaml:"default-limit"`
	// MaxLimit is the largest acceptable limit.
	MaxLimit *int `yaml:"max-limit"`
}

func (l *Lists) validateAndNormalize() error {
	if l.DefaultLimit == nil && l.MaxLimit == nil {
		return nil
	}
	settings.Default(&l.MaxLimit, model.MaxPageLimit)
	settings.Default(&l.DefaultLimit, min(model.DefaultPageLimit, *l.MaxLimit))
	if *l.DefaultLimit < 1 || *l.DefaultLimit > *l.MaxLimit {
		return fmt.Errorf(
			"default limit (%d) must be in [1, %d] range",
			*l.DefaultLimit, *l.MaxLimit,
		)
	}
	return nil
}
