// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migrationuc provides the database management use cases.
// It exposes two use cases, namely InitDBUseCase for preparing an
// empty schema and the normal role (which owns it) using the admin
// role, and MigrateDBUseCase for creating or upgrading the tables
// of that schema by applying the pending schema migrations using the
// normal role. This package also exposes the SchemaSettings interface
// which represents the expectations from the configuration file, so
// these use cases do not depend on a specific configuration format.
package migrationuc
