package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/course-microservice/internal/config"
	"github.com/course-microservice/internal/pkg/logger"
	"github.com/course-microservice/internal/repository/cache"
	"github.com/course-microservice/internal/repository/postgres"
	redisRepo "github.com/course-microservice/internal/repository/redis"
	"github.com/course-microservice/internal/worker"
	"github.com/course-microservice/internal/worker/review"
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

	log.Info("Starting Course Microservice worker")

	if !cfg.Worker.Enabled {
		log.Info("Worker disabled by configuration, exiting")
		return
	}

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

	// 6. Initialize repositories and workers
	poiRepo := postgres.NewPOIRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	aggregateWorker := review.NewAggregateWorker(
		streamRepo,
		reviewRepo,
		poiRepo,
		cfg.Worker.ConsumerGroup,
		log,
	)

	manager := worker.NewManager(log)
	manager.Register(aggregateWorker)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if err := manager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	log.Info("Workers started")

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down workers gracefully...")

	workerCancel()
	if err := manager.Stop(); err != nil {
		log.Error("Worker shutdown error", zap.Error(err))
	}

	log.Info("Workers stopped")
}
