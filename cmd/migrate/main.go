// Command migrate applies the SQL schema and seeds the first admin account.
// The admin credentials come from ADMIN_USERNAME and ADMIN_PASSWORD; when
// unset, only the schema is applied.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/rollcall/attendance-system/internal/core/domain"
	"github.com/rollcall/attendance-system/internal/infrastructure/config"
	"github.com/rollcall/attendance-system/internal/infrastructure/db/postgres"
	"github.com/rollcall/attendance-system/internal/pkg/password"
	"github.com/rollcall/attendance-system/pkg/logger"
)

const schemaFile = "migrations/0001_initial_schema.sql"

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("configuration failed")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProduction()})

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	schema, err := os.ReadFile(schemaFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", schemaFile).Msg("read schema failed")
	}

	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatal().Err(err).Msg("apply schema failed")
	}
	log.Info().Str("file", schemaFile).Msg("schema applied")

	username := os.Getenv("ADMIN_USERNAME")
	pass := os.Getenv("ADMIN_PASSWORD")
	if username == "" || pass == "" {
		log.Info().Msg("ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	hash, err := password.Hash(pass)
	if err != nil {
		log.Fatal().Err(err).Msg("hash admin password failed")
	}

	// Re-running the seed rotates the admin password rather than failing.
	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, role, is_active)
		 VALUES ($1, $2, $3, $4, TRUE)
		 ON CONFLICT (username)
		 DO UPDATE SET password_hash = EXCLUDED.password_hash, is_active = TRUE`,
		uuid.NewString(), username, hash, string(domain.RoleAdmin))
	if err != nil {
		log.Fatal().Err(err).Msg("seed admin failed")
	}

	log.Info().Str("username", username).Msg("admin account seeded")
}
