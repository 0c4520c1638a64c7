package worker

import (
	"context"
)

// Worker - фоновый потребитель событий движка (например, пересчёт
// денормализованных рейтингов POI). Запускается под Manager.
type Worker interface {
	// Start блокирует до остановки воркера или отмены контекста
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру завершиться; идемпотентен
	Stop() error

	// Name возвращает имя воркера для логов
	Name() string
}
