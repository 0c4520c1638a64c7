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
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// uniqueViolation - код ошибки PostgreSQL для нарушения уникального ограничения
const uniqueViolation = "23505"

type poiRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPOIRepository(db *DB) repository.POIRepository {
	return &poiRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const poiColumns = `
	id, name, category, lat, lng, indoor, price_level, alcohol,
	mood_tag, open_hours, food_tags, rating_avg, link, created_at, updated_at
`

func (r *poiRepository) Save(ctx context.Context, poi *domain.POI) error {
	exec := executorFrom(ctx, r.db)

	if poi.ID == 0 {
		query := `
			INSERT INTO pois (
				name, category, lat, lng, indoor, price_level, alcohol,
				mood_tag, open_hours, food_tags, rating_avg, link
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id, created_at, updated_at
		`
		err := exec.QueryRowContext(ctx, query,
			poi.Name, poi.Category.String(), poi.Lat, poi.Lng, poi.Indoor,
			poi.PriceLevel, poi.Alcohol, poi.MoodTag, poi.OpenHours,
			pq.Array(poi.FoodTags), poi.RatingAvg, poi.Link,
		).Scan(&poi.ID, &poi.CreatedAt, &poi.UpdatedAt)
		if err != nil {
			// Гонка на ключе идентичности (name, lat, lng): проигравший
			// получает conflict, не тихий дубликат
			var pgErr *pgconn.PgError
			if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return errors.ErrDuplicatePoi
			}
			r.logger.Error("Failed to insert POI", zap.String("name", poi.Name), zap.Error(err))
			return errors.ErrDatabaseError
		}
		return nil
	}

	query := `
		UPDATE pois
		SET name = $1, category = $2, lat = $3, lng = $4, indoor = $5,
			price_level = $6, alcohol = $7, mood_tag = $8, open_hours = $9,
			food_tags = $10, rating_avg = $11, link = $12, updated_at = now()
		WHERE id = $13
		RETURNING updated_at
	`
	err := exec.QueryRowContext(ctx, query,
		poi.Name, poi.Category.String(), poi.Lat, poi.Lng, poi.Indoor,
		poi.PriceLevel, poi.Alcohol, poi.MoodTag, poi.OpenHours,
		pq.Array(poi.FoodTags), poi.RatingAvg, poi.Link, poi.ID,
	).Scan(&poi.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errors.ErrDuplicatePoi
		}
		r.logger.Error("Failed to update POI", zap.Int64("id", poi.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *poiRepository) FindByID(ctx context.Context, id int64) (*domain.POI, error) {
	exec := executorFrom(ctx, r.db)

	query := `SELECT ` + poiColumns + ` FROM pois WHERE id = $1`
	poi, err := scanPOI(exec.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get POI by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return poi, nil
}

func (r *poiRepository) FindByIdentity(ctx context.Context, name string, lat, lng float64) (*domain.POI, error) {
	exec := executorFrom(ctx, r.db)

	query := `SELECT ` + poiColumns + ` FROM pois WHERE name = $1 AND lat = $2 AND lng = $3`
	poi, err := scanPOI(exec.QueryRowContext(ctx, query, name, lat, lng))
	if err == sql.ErrNoRows {
		// Отсутствие совпадения - путь создания, не ошибка
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to look up POI identity",
			zap.String("name", name),
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	return poi, nil
}

func (r *poiRepository) UpdateRatingAvg(ctx context.Context, id int64, avg float64) error {
	exec := executorFrom(ctx, r.db)

	result, err := exec.ExecContext(ctx,
		`UPDATE pois SET rating_avg = $1, updated_at = now() WHERE id = $2`,
		avg, id,
	)
	if err != nil {
		r.logger.Error("Failed to update POI rating avg", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrPoiNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPOI(row rowScanner) (*domain.POI, error) {
	var poi domain.POI
	var category string
	err := row.Scan(
		&poi.ID, &poi.Name, &category, &poi.Lat, &poi.Lng, &poi.Indoor,
		&poi.PriceLevel, &poi.Alcohol, &poi.MoodTag, &poi.OpenHours,
		pq.Array(&poi.FoodTags), &poi.RatingAvg, &poi.Link,
		&poi.CreatedAt, &poi.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	poi.Category = domain.ParseCategory(category)
	return &poi, nil
}
