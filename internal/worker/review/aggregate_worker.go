package review

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/course-microservice/internal/domain"
	"github.com/course-microservice/internal/domain/repository"
	"github.com/course-microservice/internal/worker"
	"go.uber.org/zap"
)

const (
	maxBatchSize    = 20                     // максимум сообщений за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
)

// AggregateWorker потребляет события оценок и освежает денормализованный
// средний рейтинг POI. Работает вне запроса: сами операции оценки
// остаются синхронными.
type AggregateWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	reviewRepo   repository.ReviewRepository
	poiRepo      repository.POIRepository
	consumerName string
}

// NewAggregateWorker создает новый AggregateWorker
func NewAggregateWorker(
	streamRepo repository.StreamRepository,
	reviewRepo repository.ReviewRepository,
	poiRepo repository.POIRepository,
	consumerGroup string,
	logger *zap.Logger,
) *AggregateWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &AggregateWorker{
		BaseWorker:   worker.NewBaseWorker("rating-aggregate", consumerGroup, logger),
		streamRepo:   streamRepo,
		reviewRepo:   reviewRepo,
		poiRepo:      poiRepo,
		consumerName: consumerName,
	}
}

// Start запускает воркер
func (w *AggregateWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting AggregateWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamPoiRated, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second) // пауза при ошибке
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает пачку событий оценок.
// Возвращает количество обработанных сообщений.
func (w *AggregateWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamPoiRated,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	// Несколько событий по одному POI в пачке сворачиваются в один пересчёт
	poiIDs := make(map[int64]struct{})
	for _, msg := range messages {
		var event domain.RatingEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
			logger.Warn("Skipping malformed rating event",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			w.ack(ctx, msg.ID)
			continue
		}
		poiIDs[event.POIID] = struct{}{}
		w.ack(ctx, msg.ID)
	}

	for poiID := range poiIDs {
		if err := w.refreshRatingAvg(ctx, poiID); err != nil {
			logger.Error("Failed to refresh rating avg",
				zap.Int64("poi_id", poiID),
				zap.Error(err))
		}
	}

	return len(messages), nil
}

func (w *AggregateWorker) refreshRatingAvg(ctx context.Context, poiID int64) error {
	avg, count, err := w.reviewRepo.AggregateByPoi(ctx, poiID)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	if err := w.poiRepo.UpdateRatingAvg(ctx, poiID, avg); err != nil {
		return err
	}

	w.Logger().Debug("POI rating avg refreshed",
		zap.Int64("poi_id", poiID),
		zap.Float64("avg", avg),
		zap.Int("count", count))
	return nil
}

func (w *AggregateWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamPoiRated, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Warn("Failed to ack message", zap.String("message_id", messageID), zap.Error(err))
	}
}
