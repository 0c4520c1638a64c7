package repository

import (
	"context"

	"github.com/course-microservice/internal/domain"
)

// CourseRepository определяет методы для работы с курсами
type CourseRepository interface {
	// Save сохраняет новый курс
	Save(ctx context.Context, course *domain.Course) error

	// FindByIDAndCoupleID возвращает курс пары по id
	FindByIDAndCoupleID(ctx context.Context, courseID, coupleID string) (*domain.Course, error)

	// FindAllByCoupleIDWithLinks возвращает курсы пары вместе со связями и POI
	// (жадная загрузка одним вызовом)
	FindAllByCoupleIDWithLinks(ctx context.Context, coupleID string) ([]*domain.Course, error)

	// UpdateScore обновляет оценку курса
	UpdateScore(ctx context.Context, courseID string, score int) error

	// Delete удаляет курс; связи с POI удаляются каскадно
	Delete(ctx context.Context, courseID string) error
}

// LinkRepository определяет методы для связей курс-POI
type LinkRepository interface {
	// Save сохраняет связь и заполняет её id
	Save(ctx context.Context, link *domain.CoursePoiLink) error
}
