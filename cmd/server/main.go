package main

import (
	"context"
	"net/http"

	"github.com/rentassist/identity-service/internal/api"
	"github.com/rentassist/identity-service/internal/infrastructure/config"
	mongodb "github.com/rentassist/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/rentassist/identity-service/internal/infrastructure/db/redis"
	"github.com/rentassist/identity-service/pkg/logger"
)

// @title Identity Service API
// @version 1.0
// @description Role-scoped authentication and customer approval workflow for the rental platform.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()

	if err := mongodb.NewAccountRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("account index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	e := api.NewRouter(cfg, db, rdb, log)

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Env).
		Dur("session_ttl", cfg.SessionTTL).
		Msg("identity service starting")

	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
