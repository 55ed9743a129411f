package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskflow/taskflow-api/internal/api"
	"github.com/taskflow/taskflow-api/internal/core/service"
	"github.com/taskflow/taskflow-api/internal/infrastructure/config"
	"github.com/taskflow/taskflow-api/internal/infrastructure/db/sqlite"
	"github.com/taskflow/taskflow-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	store, err := sqlite.NewStore(cfg.SQLite.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer store.Close()

	if err := store.ApplyMigrations(); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	authService := service.NewAuthService(store.Users(), cfg.JWTSecret, api.SessionTTL, log)
	if err := authService.SeedAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("seed admin account")
	}

	e := api.NewRouter(store, cfg.JWTSecret, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("api listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
