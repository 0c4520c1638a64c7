package repository

import (
	"context"

	"github.com/course-microservice/internal/domain"
)

// StreamRepository определяет методы для работы со стримами событий
type StreamRepository interface {
	// CreateConsumerGroup создаёт consumer group для стрима
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeBatch читает до count непрочитанных сообщений без блокировки
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// Publish публикует сообщение в стрим
	Publish(ctx context.Context, stream string, data interface{}) error
}
