package postgres

import (
	"context"
	"database/sql"

	"github.com/course-microservice/internal/domain"
	"github.com/course-microservice/internal/domain/repository"
	"github.com/course-microservice/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type courseRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCourseRepository(db *DB) repository.CourseRepository {
	return &courseRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *courseRepository) Save(ctx context.Context, course *domain.Course) error {
	exec := executorFrom(ctx, r.db)

	query := `
		INSERT INTO courses (id, couple_id, title, description, score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := exec.QueryRowContext(ctx, query,
		course.ID, course.CoupleID, course.Title, course.Description, course.Score,
	).Scan(&course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert course",
			zap.String("couple_id", course.CoupleID),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *courseRepository) FindByIDAndCoupleID(ctx context.Context, courseID, coupleID string) (*domain.Course, error) {
	exec := executorFrom(ctx, r.db)

	query := `
		SELECT id, couple_id, title, description, score, created_at, updated_at
		FROM courses
		WHERE id = $1 AND couple_id = $2
	`
	var course domain.Course
	err := exec.QueryRowContext(ctx, query, courseID, coupleID).Scan(
		&course.ID, &course.CoupleID, &course.Title, &course.Description,
		&course.Score, &course.CreatedAt, &course.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get course",
			zap.String("course_id", courseID),
			zap.String("couple_id", coupleID),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	return &course, nil
}

// FindAllByCoupleIDWithLinks жадно грузит курсы, их связи и POI
// двумя запросами без N+1
func (r *courseRepository) FindAllByCoupleIDWithLinks(ctx context.Context, coupleID string) ([]*domain.Course, error) {
	exec := executorFrom(ctx, r.db)

	query := `
		SELECT id, couple_id, title, description, score, created_at, updated_at
		FROM courses
		WHERE couple_id = $1
		ORDER BY created_at DESC
	`
	rows, err := exec.QueryContext(ctx, query, coupleID)
	if err != nil {
		r.logger.Error("Failed to list courses", zap.String("couple_id", coupleID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var courses []*domain.Course
	byID := make(map[string]*domain.Course)
	for rows.Next() {
		var course domain.Course
		err := rows.Scan(
			&course.ID, &course.CoupleID, &course.Title, &course.Description,
			&course.Score, &course.CreatedAt, &course.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan course", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		course.Links = []*domain.CoursePoiLink{}
		courses = append(courses, &course)
		byID[course.ID] = &course
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError
	}
	if len(courses) == 0 {
		return []*domain.Course{}, nil
	}

	linkQuery := `
		SELECT
			l.id, l.course_id, l.poi_id, l.order_index, l.course_rating, l.updated_at,
			p.id, p.name, p.category, p.lat, p.lng, p.indoor, p.price_level, p.alcohol,
			p.mood_tag, p.open_hours, p.food_tags, p.rating_avg, p.link,
			p.created_at, p.updated_at
		FROM course_poi_links l
		JOIN pois p ON p.id = l.poi_id
		JOIN courses c ON c.id = l.course_id
		WHERE c.couple_id = $1
	`
	linkRows, err := exec.QueryContext(ctx, linkQuery, coupleID)
	if err != nil {
		r.logger.Error("Failed to load course links", zap.String("couple_id", coupleID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var link domain.CoursePoiLink
		var poi domain.POI
		var category string
		err := linkRows.Scan(
			&link.ID, &link.CourseID, &link.POIID, &link.OrderIndex,
			&link.CourseRating, &link.UpdatedAt,
			&poi.ID, &poi.Name, &category, &poi.Lat, &poi.Lng, &poi.Indoor,
			&poi.PriceLevel, &poi.Alcohol, &poi.MoodTag, &poi.OpenHours,
			pq.Array(&poi.FoodTags), &poi.RatingAvg, &poi.Link,
			&poi.CreatedAt, &poi.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan course link", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		poi.Category = domain.ParseCategory(category)
		link.POI = &poi

		if course, ok := byID[link.CourseID]; ok {
			course.Links = append(course.Links, &link)
		}
	}
	if err := linkRows.Err(); err != nil {
		return nil, errors.ErrDatabaseError
	}

	return courses, nil
}

func (r *courseRepository) UpdateScore(ctx context.Context, courseID string, score int) error {
	exec := executorFrom(ctx, r.db)

	result, err := exec.ExecContext(ctx,
		`UPDATE courses SET score = $1, updated_at = now() WHERE id = $2`,
		score, courseID,
	)
	if err != nil {
		r.logger.Error("Failed to update course score", zap.String("course_id", courseID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrCourseNotFound
	}
	return nil
}

// Delete удаляет курс; связи уходят каскадом по FK
func (r *courseRepository) Delete(ctx context.Context, courseID string) error {
	exec := executorFrom(ctx, r.db)

	result, err := exec.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, courseID)
	if err != nil {
		r.logger.Error("Failed to delete course", zap.String("course_id", courseID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrCourseNotFound
	}
	return nil
}
