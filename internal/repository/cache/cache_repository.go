package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/course-microservice/internal/domain"
	"github.com/course-microservice/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func summaryKey(poiID int64) string {
	return fmt.Sprintf("review:summary:%d", poiID)
}

func (r *cacheRepository) GetReviewSummary(ctx context.Context, poiID int64) (*domain.ReviewSummary, error) {
	val, err := r.client.Get(ctx, summaryKey(poiID)).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get review summary from cache",
			zap.Int64("poi_id", poiID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	var summary domain.ReviewSummary
	if err := json.Unmarshal(val, &summary); err != nil {
		r.logger.Warn("Failed to unmarshal cached review summary",
			zap.Int64("poi_id", poiID),
			zap.Error(err),
		)
		return nil, nil
	}

	// MyRating в кэше не хранится: агрегат общий для всех пользователей
	summary.MyRating = nil

	r.logger.Debug("Review summary cache hit", zap.Int64("poi_id", poiID))
	return &summary, nil
}

func (r *cacheRepository) SetReviewSummary(ctx context.Context, summary *domain.ReviewSummary, ttl time.Duration) error {
	shared := *summary
	shared.MyRating = nil

	data, err := json.Marshal(&shared)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := r.client.Set(ctx, summaryKey(summary.POIID), data, ttl).Err(); err != nil {
		r.logger.Error("Failed to set review summary cache",
			zap.Int64("poi_id", summary.POIID),
			zap.Error(err),
		)
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Review summary cached",
		zap.Int64("poi_id", summary.POIID),
		zap.Duration("ttl", ttl),
	)
	return nil
}

func (r *cacheRepository) InvalidateReviewSummary(ctx context.Context, poiID int64) error {
	if err := r.client.Del(ctx, summaryKey(poiID)).Err(); err != nil {
		r.logger.Error("Failed to invalidate review summary cache",
			zap.Int64("poi_id", poiID),
			zap.Error(err),
		)
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Review summary cache invalidated", zap.Int64("poi_id", poiID))
	return nil
}
