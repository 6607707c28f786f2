package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/K-HALID007/shipment-tracking-api/internal/api"
	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
	"github.com/K-HALID007/shipment-tracking-api/internal/core/service"
	"github.com/K-HALID007/shipment-tracking-api/internal/infrastructure/config"
	mongodb "github.com/K-HALID007/shipment-tracking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/K-HALID007/shipment-tracking-api/internal/infrastructure/db/redis"
	"github.com/K-HALID007/shipment-tracking-api/internal/infrastructure/queue"
	"github.com/K-HALID007/shipment-tracking-api/pkg/logger"
)

const (
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	// --- Repositories ---
	shipmentRepo := mongodb.NewShipmentRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	authRepo := mongodb.NewAuthRepository(db)

	if err := shipmentRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("shipment indexes failed")
	}
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}

	// --- Read path: cache in front of the store ---
	trackingCache := redisdb.NewTrackingCache(rdb, cfg.Redis.CacheTTL)
	readPath := redisdb.NewReadPath(trackingCache, shipmentRepo)
	shipmentStore := redisdb.NewShipmentStore(shipmentRepo, trackingCache)

	// --- Audit trail dispatcher ---
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditRepo, log)
	dispatcher.Start(ctx)

	// --- Services ---
	verifier := service.NewVerifier(readPath, cfg.Verify.MaxAttempts, cfg.Verify.Interval, log)

	var policy domain.TransitionPolicy
	if cfg.Verify.StatusPolicy == "forward" {
		policy = domain.ForwardOnly
	}

	shipmentService := service.NewShipmentService(shipmentStore, verifier, dispatcher, policy, log)
	reportService := service.NewReportService(shipmentStore, auditRepo, authRepo, log)
	adminService := service.NewAdminService(shipmentStore, authRepo, log)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, tokenTTL)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Shipments: shipmentService,
		Reports:   reportService,
		Admin:     adminService,
		Auth:      authService,
		DB:        db,
		RDB:       rdb,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
