// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/momeni/car-api/pkg/core/usecase/migrationuc"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the pending schema migrations",
	Long: `Apply the pending schema migrations as the normal role.
The migrations are embedded in the binary and their applied versions
are recorded in the goose_db_version table of the application schema,
so running migrate again is harmless.`,
	RunE: migrate,
	Args: cobra.NoArgs,
}

func migrate(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err = migrationuc.NewMigrateDB(c).Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("migrating DB: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(migrateCmd)
}
