// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the carapi
// web server. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database management actions.
// Two actions are supported. The init action (re)creates the
// application schema and the normal role, renewing the roles passwords,
// and the migrate action applies the pending schema migrations.
//
//	./carapi [-c /path/of/config.yaml]           # start web server
//	./carapi db init [-c /path/of/config.yaml]
//	./carapi db migrate [-c /path/of/config.yaml]
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momeni/car-api/pkg/adapter/config"
	"github.com/momeni/car-api/pkg/adapter/config/cfg1"
	"github.com/momeni/car-api/pkg/adapter/restful/gin/routes"
	"github.com/momeni/car-api/pkg/core/log"
	"github.com/momeni/car-api/pkg/core/repo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "carapi",
	Short: "A REST API for managing users, car brands, and cars",
	Long: `A REST API for managing users, car brands, and cars.
Users sign up and log in with their email and password, obtaining
short-lived bearer tokens which are required by the brands and cars
resources. Cars reference their brand and owner, and each plate may
be registered once.
The PostgreSQL schema must be prepared by the "db init" and "db migrate"
sub-commands beforehand.`,
	RunE:         startWebServer,
	SilenceUsage: true,
}

func startWebServer(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	defer c.Close()
	ctx, stop := signal.NotifyContext(
		cmd.Context(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	e := c.Gin.NewEngine(slog.Default())
	if err = routes.Register(ctx, e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	srv := &http.Server{
		Addr:              c.Gin.Address,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info(gctx, "listening", slog.String("address", srv.Addr))
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		d := c.Gin.ShutdownTimeout.Std()
		sctx, cancel := context.WithTimeout(context.Background(), d)
		defer cancel()
		log.Info(sctx, "shutting down", slog.Duration("timeout", d))
		return srv.Shutdown(sctx)
	})
	if err = g.Wait(); err != nil {
		return fmt.Errorf("serving HTTP: %w", err)
	}
	return nil
}

// loadConfig loads the cfgPath configuration file and replaces the
// default slog logger based on its logging settings.
func loadConfig() (*cfg1.Config, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	slog.SetDefault(c.Logging.NewLogger(os.Stderr))
	return c, nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = "configs/sample-config.yaml"
	}
}
