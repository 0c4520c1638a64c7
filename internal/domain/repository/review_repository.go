package repository

import (
	"context"

	"github.com/course-microservice/internal/domain"
)

// ReviewRepository определяет методы для оценок POI
type ReviewRepository interface {
	// Save создаёт или обновляет оценку и заполняет её id
	Save(ctx context.Context, review *domain.PoiReview) error

	// FindByPoiAndUser возвращает оценку пользователя для POI.
	// Отсутствие оценки - не ошибка: возвращается (nil, nil).
	FindByPoiAndUser(ctx context.Context, poiID, userID int64) (*domain.PoiReview, error)

	// AggregateByPoi возвращает (средний рейтинг, количество) по всем
	// оценкам POI; (0, 0) когда оценок нет
	AggregateByPoi(ctx context.Context, poiID int64) (float64, int, error)
}
