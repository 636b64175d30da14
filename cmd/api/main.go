// Command api serves the task manager REST API.
//
// @title                       Task Manager API
// @version                     1.0
// @description                 Personal task management with per-user insights.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	_ "github.com/taskflow/task-manager/docs"
	"github.com/taskflow/task-manager/internal/api"
	"github.com/taskflow/task-manager/internal/api/handler"
	"github.com/taskflow/task-manager/internal/core/service"
	"github.com/taskflow/task-manager/internal/infrastructure/config"
	mongodb "github.com/taskflow/task-manager/internal/infrastructure/db/mongo"
	redisdb "github.com/taskflow/task-manager/internal/infrastructure/db/redis"
	"github.com/taskflow/task-manager/pkg/logger"
)

func main() {
	cfg := config.Load(zerolog.New(os.Stderr).With().Timestamp().Logger())
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "task-manager",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnect mongodb")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Timeout:  cfg.Redis.Timeout,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer rdb.Close()

	userRepo := mongodb.NewAuthRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	if err := mongodb.EnsureIndexes(ctx, userRepo, taskRepo); err != nil {
		log.Fatal().Err(err).Msg("create indexes")
	}

	e := api.NewRouter(api.Deps{
		Auth:     service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger.Component("auth")),
		Tasks:    service.NewTaskService(taskRepo, logger.Component("tasks")),
		Insights: service.NewInsightsService(taskRepo, logger.Component("insights")),
		Limiter:  redisdb.NewRateLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window),
		Ready: map[string]handler.Pinger{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		FrontendURL: cfg.FrontendURL,
		Logger:      logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
	log.Info().Msg("server stopped")
}
