package main

import (
	"os"

	"bookqa/internal/config"
)

// loadEnvFiles reads dotenv files for RESULTS_DB_DSN and MIGRATIONS_DIR.
// Variables already in the environment win.
func loadEnvFiles() {
	config.LoadEnv(".env", ".env.local")
}

// migrationsDir is where -command create writes new files. The other
// commands use the migrations embedded in the binary.
func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}
