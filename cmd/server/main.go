package main

import (
	"context"

	"github.com/pastime-app/backend/internal/app"
	"github.com/pastime-app/backend/internal/auth"
	"github.com/pastime-app/backend/internal/cache"
	"github.com/pastime-app/backend/internal/config"
	"github.com/pastime-app/backend/internal/db"
	"github.com/pastime-app/backend/internal/handler"
	"github.com/pastime-app/backend/internal/logger"
	"github.com/pastime-app/backend/internal/server"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	// Inject token issuer and logger into app context
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	appCtx := app.New(database, redisCache, issuer, log)

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	router := server.New(appCtx, server.Mounts{
		Auth:     handler.NewAuthHandler(appCtx),
		User:     handler.NewUserHandler(appCtx),
		Swipe:    handler.NewSwipeHandler(appCtx),
		Messages: handler.NewMessageHandler(appCtx),
		Friends:  handler.NewFriendHandler(appCtx),
	})

	if err := server.Start(cfg, router); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
