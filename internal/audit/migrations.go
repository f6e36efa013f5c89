// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import "embed"

// MigrationsDir is the directory inside [Migrations] holding the schema.
const MigrationsDir = "migrations"

// Migrations is the audit.proxy_event schema, applied at startup when a
// database is configured.
//
//go:embed migrations/*.sql
var Migrations embed.FS
