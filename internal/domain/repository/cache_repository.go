package repository

import (
	"context"
	"time"

	"github.com/course-microservice/internal/domain"
)

// CacheRepository определяет методы кэширования
type CacheRepository interface {
	// GetReviewSummary возвращает закэшированный агрегат оценок POI
	// или nil при промахе
	GetReviewSummary(ctx context.Context, poiID int64) (*domain.ReviewSummary, error)

	// SetReviewSummary кэширует агрегат оценок POI
	SetReviewSummary(ctx context.Context, summary *domain.ReviewSummary, ttl time.Duration) error

	// InvalidateReviewSummary сбрасывает кэш агрегата после upsert оценки
	InvalidateReviewSummary(ctx context.Context, poiID int64) error
}
