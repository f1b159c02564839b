package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rollcall/attendance-system/internal/api"
	"github.com/rollcall/attendance-system/internal/core/service"
	"github.com/rollcall/attendance-system/internal/infrastructure/config"
	"github.com/rollcall/attendance-system/internal/infrastructure/db/postgres"
	redisdb "github.com/rollcall/attendance-system/internal/infrastructure/db/redis"
	"github.com/rollcall/attendance-system/internal/infrastructure/queue"
	"github.com/rollcall/attendance-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Attendance System API
// @version      1.0
// @description  Barcode roll-call API for student attendance sessions.
// @BasePath     /
func main() {
	// A missing .env is fine; the environment itself is authoritative.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("configuration failed")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	rdb, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close error")
		}
	}()

	// The dispatcher outlives the signal context so audit events enqueued
	// by in-flight requests are still persisted during the drain below.
	auditRepo := postgres.NewAuditRepository(pool)
	auditService := service.NewAuditService(auditRepo, log)
	dispatcher := queue.NewDispatcher(0, auditService, log)
	dispatcher.Start(context.Background())

	e := api.NewRouter(pool, rdb, dispatcher, cfg, log)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}

	// Drain after the server stops accepting requests, so nothing can
	// enqueue once the channels close.
	dispatcher.Stop()
}
