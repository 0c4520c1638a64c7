package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/course-microservice/internal/domain"
	"github.com/course-microservice/internal/domain/repository"
	"github.com/course-microservice/internal/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type reviewRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewReviewRepository(db *DB) repository.ReviewRepository {
	return &reviewRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *reviewRepository) Save(ctx context.Context, review *domain.PoiReview) error {
	exec := executorFrom(ctx, r.db)

	if review.ID == 0 {
		query := `
			INSERT INTO poi_reviews (poi_id, user_id, rating)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at
		`
		err := exec.QueryRowContext(ctx, query,
			review.POIID, review.UserID, review.Rating,
		).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
		if err != nil {
			// Конкурентная первая вставка той же пары (poi, user):
			// нарушение уникальности поднимается как conflict
			var pgErr *pgconn.PgError
			if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return errors.ErrDuplicateReview
			}
			r.logger.Error("Failed to insert review",
				zap.Int64("poi_id", review.POIID),
				zap.Int64("user_id", review.UserID),
				zap.Error(err),
			)
			return errors.ErrDatabaseError
		}
		return nil
	}

	query := `
		UPDATE poi_reviews
		SET rating = $1, updated_at = now()
		WHERE id = $2
		RETURNING updated_at
	`
	err := exec.QueryRowContext(ctx, query, review.Rating, review.ID).Scan(&review.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to update review", zap.Int64("id", review.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *reviewRepository) FindByPoiAndUser(ctx context.Context, poiID, userID int64) (*domain.PoiReview, error) {
	exec := executorFrom(ctx, r.db)

	query := `
		SELECT id, poi_id, user_id, rating, created_at, updated_at
		FROM poi_reviews
		WHERE poi_id = $1 AND user_id = $2
	`
	var review domain.PoiReview
	err := exec.QueryRowContext(ctx, query, poiID, userID).Scan(
		&review.ID, &review.POIID, &review.UserID, &review.Rating,
		&review.CreatedAt, &review.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get review",
			zap.Int64("poi_id", poiID),
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	return &review, nil
}

func (r *reviewRepository) AggregateByPoi(ctx context.Context, poiID int64) (float64, int, error) {
	exec := executorFrom(ctx, r.db)

	// COALESCE даёт (0, 0) для POI без оценок - это валидное состояние
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM poi_reviews
		WHERE poi_id = $1
	`
	var avg float64
	var count int
	err := exec.QueryRowContext(ctx, query, poiID).Scan(&avg, &count)
	if err != nil {
		r.logger.Error("Failed to aggregate reviews", zap.Int64("poi_id", poiID), zap.Error(err))
		return 0, 0, errors.ErrDatabaseError
	}
	return avg, count, nil
}
