package repository

import (
	"context"

	"github.com/course-microservice/internal/domain"
)

// POIRepository определяет методы для работы с точками интереса
type POIRepository interface {
	// Save создаёт или обновляет POI и заполняет его id
	Save(ctx context.Context, poi *domain.POI) error

	// FindByID возвращает POI по id или (nil, nil), если запись отсутствует
	FindByID(ctx context.Context, id int64) (*domain.POI, error)

	// FindByIdentity ищет POI по точному совпадению (name, lat, lng).
	// Отсутствие совпадения - не ошибка: возвращается (nil, nil).
	FindByIdentity(ctx context.Context, name string, lat, lng float64) (*domain.POI, error)

	// UpdateRatingAvg обновляет денормализованный средний рейтинг
	UpdateRatingAvg(ctx context.Context, id int64, avg float64) error
}
