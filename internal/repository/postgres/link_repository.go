package postgres

import (
	"context"

	"github.com/course-microservice/internal/domain"
	"github.com/course-microservice/internal/domain/repository"
	"github.com/course-microservice/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type linkRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewLinkRepository(db *DB) repository.LinkRepository {
	return &linkRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *linkRepository) Save(ctx context.Context, link *domain.CoursePoiLink) error {
	exec := executorFrom(ctx, r.db)

	query := `
		INSERT INTO course_poi_links (course_id, poi_id, order_index, course_rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id, updated_at
	`
	err := exec.QueryRowContext(ctx, query,
		link.CourseID, link.POIID, link.OrderIndex, link.CourseRating,
	).Scan(&link.ID, &link.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert course link",
			zap.String("course_id", link.CourseID),
			zap.Int64("poi_id", link.POIID),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}
	return nil
}
