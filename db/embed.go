// Package db holds the results store schema.
package db

import "embed"

// Migrations are the goose SQL migrations under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of Migrations inside the embedded FS.
const MigrationsDir = "migrations"
