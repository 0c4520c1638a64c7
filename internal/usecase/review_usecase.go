package usecase

import (
	"context"
	"time"

	"github.com/course-microservice/internal/domain"
	"github.com/course-microservice/internal/domain/repository"
	"github.com/course-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

// ReviewUseCase - upsert оценок POI и агрегаты для отображения
type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	poiRepo    repository.POIRepository
	cacheRepo  repository.CacheRepository
	streamRepo repository.StreamRepository
	txManager  repository.TxManager
	logger     *zap.Logger
	summaryTTL time.Duration
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	poiRepo repository.POIRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	txManager repository.TxManager,
	logger *zap.Logger,
	summaryTTL time.Duration,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		poiRepo:    poiRepo,
		cacheRepo:  cacheRepo,
		streamRepo: streamRepo,
		txManager:  txManager,
		logger:     logger,
		summaryTTL: summaryTTL,
	}
}

// UpsertRating выставляет оценку POI: не более одной записи на пару
// (poi, user), повторная отправка перезаписывает оценку на месте.
// Создание требует существования POI.
func (uc *ReviewUseCase) UpsertRating(ctx context.Context, userID, poiID int64, rating int) (*domain.PoiReview, error) {
	var review *domain.PoiReview
	err := uc.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		review, err = uc.upsertOne(ctx, userID, poiID, rating)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.afterUpsert(ctx, review)
	return review, nil
}

// UpsertRatings обрабатывает записи независимо в порядке запроса;
// сбой на одной прерывает остальные, вся пачка атомарна
func (uc *ReviewUseCase) UpsertRatings(ctx context.Context, userID int64, items []RatingCommand) ([]*domain.PoiReview, error) {
	var reviews []*domain.PoiReview
	err := uc.txManager.WithinTx(ctx, func(ctx context.Context) error {
		for _, item := range items {
			review, err := uc.upsertOne(ctx, userID, item.POIID, item.Rating)
			if err != nil {
				return err
			}
			reviews = append(reviews, review)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, review := range reviews {
		uc.afterUpsert(ctx, review)
	}
	return reviews, nil
}

// RatingCommand - одна оценка в bulk-запросе
type RatingCommand struct {
	POIID  int64
	Rating int
}

// Summarize возвращает (средний рейтинг, количество, моя оценка) для POI.
// Отсутствие оценок - не ошибка: (0.0, 0, nil). Агрегат кэшируется,
// собственная оценка пользователя читается отдельно.
func (uc *ReviewUseCase) Summarize(ctx context.Context, poiID, userID int64) (*domain.ReviewSummary, error) {
	summary, err := uc.cacheRepo.GetReviewSummary(ctx, poiID)
	if err != nil {
		uc.logger.Warn("Review summary cache read failed", zap.Int64("poi_id", poiID), zap.Error(err))
	}

	if summary == nil {
		avg, count, err := uc.reviewRepo.AggregateByPoi(ctx, poiID)
		if err != nil {
			uc.logger.Error("Failed to aggregate reviews", zap.Int64("poi_id", poiID), zap.Error(err))
			return nil, err
		}
		summary = &domain.ReviewSummary{
			POIID:       poiID,
			AvgRating:   avg,
			ReviewCount: count,
		}
		if err := uc.cacheRepo.SetReviewSummary(ctx, summary, uc.summaryTTL); err != nil {
			uc.logger.Warn("Review summary cache write failed", zap.Int64("poi_id", poiID), zap.Error(err))
		}
	}

	mine, err := uc.reviewRepo.FindByPoiAndUser(ctx, poiID, userID)
	if err != nil {
		return nil, err
	}
	if mine != nil {
		rating := mine.Rating
		summary.MyRating = &rating
	} else {
		summary.MyRating = nil
	}
	return summary, nil
}

func (uc *ReviewUseCase) upsertOne(ctx context.Context, userID, poiID int64, rating int) (*domain.PoiReview, error) {
	if !domain.ValidRating(rating) {
		return nil, errors.ErrInvalidRating
	}

	existing, err := uc.reviewRepo.FindByPoiAndUser(ctx, poiID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Rating = rating
		if err := uc.reviewRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		uc.logger.Debug("Review updated",
			zap.Int64("poi_id", poiID),
			zap.Int64("user_id", userID),
			zap.Int("rating", rating),
		)
		return existing, nil
	}

	poi, err := uc.poiRepo.FindByID(ctx, poiID)
	if err != nil {
		return nil, err
	}
	if poi == nil {
		return nil, errors.ErrPoiNotFound
	}

	review := &domain.PoiReview{
		POIID:  poiID,
		UserID: userID,
		Rating: rating,
	}
	if err := uc.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}
	uc.logger.Debug("Review created",
		zap.Int64("poi_id", poiID),
		zap.Int64("user_id", userID),
		zap.Int("rating", rating),
	)
	return review, nil
}

// afterUpsert сбрасывает кэш агрегата и публикует событие для воркера,
// пересчитывающего денормализованный rating_avg. Оба действия best-effort:
// сама оценка уже зафиксирована.
func (uc *ReviewUseCase) afterUpsert(ctx context.Context, review *domain.PoiReview) {
	if err := uc.cacheRepo.InvalidateReviewSummary(ctx, review.POIID); err != nil {
		uc.logger.Warn("Failed to invalidate review summary cache",
			zap.Int64("poi_id", review.POIID),
			zap.Error(err),
		)
	}

	event := domain.RatingEvent{
		POIID:  review.POIID,
		UserID: review.UserID,
		Rating: review.Rating,
	}
	if err := uc.streamRepo.Publish(ctx, domain.StreamPoiRated, event); err != nil {
		uc.logger.Warn("Failed to publish rating event",
			zap.Int64("poi_id", review.POIID),
			zap.Error(err),
		)
	}
}
