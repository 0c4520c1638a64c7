package usecase

import (
	"context"

	"github.com/course-microservice/internal/domain"
	"github.com/course-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

// PoiReconciler находит или создаёт каноническую запись POI для
// нормализованного входного payload. Идентичность - точное совпадение
// (name, lat, lng); отсутствие совпадения - путь создания, не ошибка.
type PoiReconciler struct {
	poiRepo repository.POIRepository
	logger  *zap.Logger
}

func NewPoiReconciler(poiRepo repository.POIRepository, logger *zap.Logger) *PoiReconciler {
	return &PoiReconciler{
		poiRepo: poiRepo,
		logger:  logger,
	}
}

// Reconcile применяет правила merge: обязательные поля перезаписываются,
// опциональные обновляются только при наличии входного значения.
// Гонки по одному ключу идентичности разрешает уникальное ограничение
// хранилища - проигравший получает conflict, не тихий дубликат.
func (r *PoiReconciler) Reconcile(ctx context.Context, in domain.PoiInput) (*domain.POI, error) {
	existing, err := r.poiRepo.FindByIdentity(ctx, in.Name, in.Lat, in.Lng)
	if err != nil {
		r.logger.Error("Failed to look up POI identity",
			zap.String("name", in.Name),
			zap.Float64("lat", in.Lat),
			zap.Float64("lng", in.Lng),
			zap.Error(err),
		)
		return nil, err
	}

	if existing != nil {
		in.ApplyTo(existing)
		if err := r.poiRepo.Save(ctx, existing); err != nil {
			r.logger.Error("Failed to update POI", zap.Int64("poi_id", existing.ID), zap.Error(err))
			return nil, err
		}
		r.logger.Debug("POI updated",
			zap.Int64("poi_id", existing.ID),
			zap.String("name", existing.Name),
		)
		return existing, nil
	}

	poi := in.NewPOI()
	if err := r.poiRepo.Save(ctx, poi); err != nil {
		r.logger.Error("Failed to create POI", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("POI created",
		zap.Int64("poi_id", poi.ID),
		zap.String("name", poi.Name),
	)
	return poi, nil
}
