package main

// @title Course Microservice API
// @version 1.0.0
// @description Сервис составления курсов (маршрутов свиданий) из точек интереса (POI).
// @description
// @description Основные возможности:
// @description - Создание курса из упорядоченного списка POI с дедупликацией по ключу (name, lat, lng)
// @description - Чтение курсов пары со стабильным порядком POI
// @description - Оценки POI (1-5) с агрегатами для отображения

// @contact.name API Support
// @contact.email support@course-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/course-microservice/docs"
	"github.com/course-microservice/internal/config"
	httpDelivery "github.com/course-microservice/internal/delivery/http"
	"github.com/course-microservice/internal/delivery/http/handler"
	"github.com/course-microservice/internal/pkg/logger"
	"github.com/course-microservice/internal/repository/cache"
	"github.com/course-microservice/internal/repository/postgres"
	redisRepo "github.com/course-microservice/internal/repository/redis"
	"github.com/course-microservice/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Course Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	courseRepo := postgres.NewCourseRepository(db)
	poiRepo := postgres.NewPOIRepository(db)
	linkRepo := postgres.NewLinkRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	txManager := postgres.NewTxManager(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	reconciler := usecase.NewPoiReconciler(poiRepo, log)

	courseUC := usecase.NewCourseUseCase(
		courseRepo,
		linkRepo,
		reconciler,
		txManager,
		log,
	)

	reviewUC := usecase.NewReviewUseCase(
		reviewRepo,
		poiRepo,
		cacheRepo,
		streamRepo,
		txManager,
		log,
		cfg.Cache.ReviewSummaryTTL,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	courseHandler := handler.NewCourseHandler(courseUC, log)
	reviewHandler := handler.NewReviewHandler(reviewUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		courseHandler,
		reviewHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
