package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cliplink/affiliate-system/internal/api"
	"github.com/cliplink/affiliate-system/internal/core/service"
	"github.com/cliplink/affiliate-system/internal/infrastructure/config"
	mongodb "github.com/cliplink/affiliate-system/internal/infrastructure/db/mongo"
	redisdb "github.com/cliplink/affiliate-system/internal/infrastructure/db/redis"
	"github.com/cliplink/affiliate-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           Affiliate Tracking API
// @version         1.0
// @description     User registration, login and admin-managed affiliate link tracking with per-user reward counters.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	linkRepo := mongodb.NewLinkRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := linkRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create link indexes")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	rewardService := service.NewRewardService(
		userRepo,
		linkRepo,
		redisdb.NewClickDedup(rdb, cfg.RateLimit.ClickTTL),
		log,
	)

	if err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin account")
	}

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		AuthService:   authService,
		RewardService: rewardService,
		Limiter:       redisdb.NewRateLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window),
		Mongo:         db,
		Redis:         rdb,
		Logger:        log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
