// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"log/slog"

	"github.com/momeni/car-api/pkg/core/log"
	"github.com/momeni/car-api/pkg/core/usecase/migrationuc"
	"github.com/spf13/cobra"
)

const credsRenewalMessage = `The admin role password is read from the
.pgpass file in the pass-dir directory. The passwords of the admin and
normal roles are renewed and written to the .pgpass.new file first,
then it replaces the .pgpass file when the changes are committed.`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Drop and recreate the application schema",
	Long: `Drop and recreate the application schema as the admin role,
create the normal role (if missing), grant it the schema privileges,
and set its search_path to the application schema. Thereafter, all
schema migrations are applied as the normal role.
ALL EXISTING DATA OF THE APPLICATION SCHEMA WILL BE LOST.
` + credsRenewalMessage,
	RunE: initDB,
	Args: cobra.NoArgs,
}

func initDB(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	v, err := migrationuc.NewInitDB(c).Init(ctx)
	if err != nil {
		return fmt.Errorf("initializing DB: %w", err)
	}
	log.Info(ctx, "database is initialized", slog.Int64("version", v))
	return nil
}

func init() {
	dbCmd.AddCommand(initCmd)
}
