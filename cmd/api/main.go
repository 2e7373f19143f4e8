// Command api runs the InnovaTube backend.
//
// @title        InnovaTube API
// @version      1.0
// @description  Authentication, session, and favorites API for InnovaTube.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/api"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/infrastructure/db/postgres"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/infrastructure/db/redis"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/infrastructure/email"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/infrastructure/queue"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/pkg/config"
	"github.com/IDGS-901-22001379/innovatube-backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	ctx := context.Background()

	// --- PostgreSQL ---
	pool, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.Postgres.DSN); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}

	// --- Redis ---
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Audit writer & notifier ---
	auditWriter := queue.NewAuditWriter(0, postgres.NewAuditRepository(pool), log)

	notifier := email.NewSMTPNotifier(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	// --- HTTP server ---
	e := api.NewRouter(cfg, pool, rdb, auditWriter, notifier, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	// Intake stops only after the server has; queued entries still drain.
	auditWriter.Close()
}
