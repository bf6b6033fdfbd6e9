package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fieldtrace/maintenance-api/internal/api"
	"github.com/fieldtrace/maintenance-api/internal/core/auth"
	"github.com/fieldtrace/maintenance-api/internal/infrastructure/config"
	mongoinfra "github.com/fieldtrace/maintenance-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/fieldtrace/maintenance-api/internal/infrastructure/db/redis"
	"github.com/fieldtrace/maintenance-api/internal/infrastructure/queue"
	"github.com/fieldtrace/maintenance-api/pkg/logger"

	_ "github.com/fieldtrace/maintenance-api/docs"
)

const shutdownTimeout = 10 * time.Second

// @title           Maintenance API
// @version         1.0
// @description     Maintenance and asset tracking backend.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	mongoClient, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongoinfra.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongoinfra.NewAuditRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("audit index creation failed")
	}

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	recorder := queue.NewSecurityRecorder(0, mongoinfra.NewSecurityEventRepository(db), log)
	recorder.Start(ctx)

	e := api.NewRouter(api.RouterDeps{
		DB:    db,
		Redis: rdb,
		Signing: auth.SigningConfig{
			AccessSecret:  cfg.Token.AccessSecret,
			RefreshSecret: cfg.Token.RefreshSecret,
			DecoySecret:   cfg.Token.DecoySecret,
			AccessTTL:     cfg.Token.AccessTTL,
			RefreshTTL:    cfg.Token.RefreshTTL,
		},
		Notifier:   recorder,
		Log:        log,
		Production: cfg.IsProduction(),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
