package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/secondchance/catalog-service/internal/adapter/httpserver"
	natspub "github.com/secondchance/catalog-service/internal/adapter/messaging/nats"
	"github.com/secondchance/catalog-service/internal/adapter/repository/cache"
	"github.com/secondchance/catalog-service/internal/adapter/repository/mongodb"
	"github.com/secondchance/catalog-service/internal/adapter/storage/s3"
	"github.com/secondchance/catalog-service/internal/auth"
	"github.com/secondchance/catalog-service/internal/catalog/usecase"
	"github.com/secondchance/catalog-service/internal/config"
	"github.com/secondchance/catalog-service/internal/mailer"
	"github.com/secondchance/catalog-service/internal/platform/logger"
	"github.com/secondchance/catalog-service/internal/platform/metrics"
	"github.com/secondchance/catalog-service/internal/platform/tracer"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.JWT.Secret == "" {
		zapLogger.Fatal("CATALOG_JWT_SECRET is not set")
	}

	ctx := context.Background()

	if cfg.Otel.Endpoint != "" {
		tp, err := tracer.Init(ctx, cfg.Otel.Endpoint, "catalog-service")
		if err != nil {
			zapLogger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer tp.Shutdown(ctx)
	}

	mongoClient, err := mongodb.Connect(&cfg.Mongo)
	if err != nil {
		zapLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)
	db := mongoClient.Database(cfg.Mongo.Database)

	itemRepo := mongodb.NewItemRepository(db, zapLogger)
	if err := itemRepo.EnsureIndexes(ctx); err != nil {
		zapLogger.Fatal("Failed to create item indexes", zap.Error(err))
	}
	userRepo := mongodb.NewUserRepository(db, zapLogger)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		zapLogger.Fatal("Failed to create user indexes", zap.Error(err))
	}

	storageClient, err := s3.NewImageStorage(
		cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey,
		cfg.MinIO.Bucket, cfg.MinIO.UseSSL, zapLogger,
	)
	if err != nil {
		zapLogger.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	var itemCache usecase.ItemCache
	if c, err := cache.NewItemCache(cfg.Redis.Address); err != nil {
		zapLogger.Warn("Redis unavailable, running without item cache", zap.Error(err))
	} else {
		itemCache = c
		defer c.Close()
	}

	var publisher usecase.EventPublisher
	if p, err := natspub.NewPublisher(cfg.NATS.URL); err != nil {
		zapLogger.Warn("NATS unavailable, running without event publishing", zap.Error(err))
	} else {
		publisher = p
		defer p.Close()
	}

	var notifier usecase.Notifier
	if cfg.SMTP.NotifyEmail != "" {
		notifier = mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Email, cfg.SMTP.Password)
	}

	metricsManager := metrics.NewManager("catalog")

	catalogUC := usecase.NewCatalogUsecase(
		itemRepo, storageClient, itemCache, publisher,
		notifier, cfg.SMTP.NotifyEmail, metricsManager, zapLogger,
	)
	authService := auth.NewService(userRepo, cfg.JWT.Secret, cfg.JWT.TokenTTL, zapLogger)

	catalogHandler := httpserver.NewCatalogHandler(catalogUC, metricsManager, zapLogger)
	authHandler := httpserver.NewAuthHandler(authService, zapLogger)
	router := httpserver.NewRouter(catalogHandler, authHandler, metricsManager, zapLogger, cfg.JWT.Secret)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
