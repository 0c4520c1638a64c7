package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/course-microservice/internal/domain"
	"github.com/course-microservice/internal/domain/repository"
	"github.com/course-microservice/internal/pkg/errors"
	"github.com/course-microservice/internal/pkg/validator"
	"github.com/course-microservice/internal/usecase/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CourseUseCase - композиция, чтение, удаление курсов и обновление оценки
type CourseUseCase struct {
	courseRepo repository.CourseRepository
	linkRepo   repository.LinkRepository
	reconciler *PoiReconciler
	txManager  repository.TxManager
	logger     *zap.Logger
}

func NewCourseUseCase(
	courseRepo repository.CourseRepository,
	linkRepo repository.LinkRepository,
	reconciler *PoiReconciler,
	txManager repository.TxManager,
	logger *zap.Logger,
) *CourseUseCase {
	return &CourseUseCase{
		courseRepo: courseRepo,
		linkRepo:   linkRepo,
		reconciler: reconciler,
		txManager:  txManager,
		logger:     logger,
	}
}

// CourseCreationResult - курс вместе со свежесозданными связями.
// Связи уже прикреплены к курсу, повторное чтение не требуется.
type CourseCreationResult struct {
	Course *domain.Course
	Links  []*domain.CoursePoiLink
}

// CreateCourse создаёт курс: заголовок со score=0, затем для каждого POI
// в порядке запроса - нормализация, reconcile и связь с порядком
// seq-либо-позиция. Вся композиция выполняется в одной транзакции:
// сбой на любом элементе откатывает целиком.
func (uc *CourseUseCase) CreateCourse(
	ctx context.Context,
	coupleID string,
	req dto.CreateCourseRequest,
) (*CourseCreationResult, error) {
	// Validate raw input before any normalization
	if err := uc.validateCourseCreation(coupleID, req); err != nil {
		return nil, err
	}

	uc.logger.Info("Creating course",
		zap.String("couple_id", coupleID),
		zap.String("title", req.Title),
		zap.Int("poi_count", len(req.Data)),
	)

	course := &domain.Course{
		ID:          uuid.NewString(),
		CoupleID:    coupleID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Score:       0,
	}

	var links []*domain.CoursePoiLink
	err := uc.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.courseRepo.Save(ctx, course); err != nil {
			return err
		}

		for i, item := range req.Data {
			input := domain.NormalizePoiInput(item.ToPoiInput())

			poi, err := uc.reconciler.Reconcile(ctx, input)
			if err != nil {
				return err
			}

			order := i + 1
			if item.Seq != nil {
				order = *item.Seq
			}

			link := &domain.CoursePoiLink{
				CourseID:   course.ID,
				POIID:      poi.ID,
				OrderIndex: &order,
				POI:        poi,
			}
			if err := uc.linkRepo.Save(ctx, link); err != nil {
				return err
			}
			links = append(links, link)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("Course creation failed",
			zap.String("couple_id", coupleID),
			zap.Error(err),
		)
		return nil, err
	}

	course.Links = links
	uc.logger.Info("Course created",
		zap.String("course_id", course.ID),
		zap.String("couple_id", coupleID),
		zap.Int("link_count", len(links)),
	)
	return &CourseCreationResult{Course: course, Links: links}, nil
}

// ListCourses возвращает курсы пары со связями в детерминированном порядке.
// Пустой результат - валидное состояние "курсов пока нет", не ошибка.
func (uc *CourseUseCase) ListCourses(ctx context.Context, coupleID string) ([]*domain.Course, error) {
	if strings.TrimSpace(coupleID) == "" {
		return nil, errors.ErrValidation.WithMessage("Couple ID cannot be empty")
	}

	courses, err := uc.courseRepo.FindAllByCoupleIDWithLinks(ctx, coupleID)
	if err != nil {
		uc.logger.Error("Failed to list courses", zap.String("couple_id", coupleID), zap.Error(err))
		return nil, err
	}

	for _, course := range courses {
		domain.SortLinks(course.Links)
	}
	return courses, nil
}

// DeleteCourse удаляет курс пары; связи удаляются каскадно
func (uc *CourseUseCase) DeleteCourse(ctx context.Context, coupleID, courseID string) error {
	course, err := uc.courseRepo.FindByIDAndCoupleID(ctx, courseID, coupleID)
	if err != nil {
		return err
	}
	if course == nil {
		uc.logger.Warn("Course to delete not found",
			zap.String("couple_id", coupleID),
			zap.String("course_id", courseID),
		)
		return errors.ErrCourseNotFound
	}

	if err := uc.courseRepo.Delete(ctx, courseID); err != nil {
		uc.logger.Error("Failed to delete course", zap.String("course_id", courseID), zap.Error(err))
		return err
	}

	uc.logger.Info("Course deleted",
		zap.String("course_id", courseID),
		zap.String("couple_id", coupleID),
	)
	return nil
}

// UpdateScore обновляет оценку курса; значение вне [0,10] отклоняется
func (uc *CourseUseCase) UpdateScore(ctx context.Context, coupleID, courseID string, score int) error {
	if !domain.ValidScore(score) {
		return errors.ErrInvalidScore
	}

	course, err := uc.courseRepo.FindByIDAndCoupleID(ctx, courseID, coupleID)
	if err != nil {
		return err
	}
	if course == nil {
		return errors.ErrCourseNotFound
	}

	if err := uc.courseRepo.UpdateScore(ctx, courseID, score); err != nil {
		uc.logger.Error("Failed to update course score", zap.String("course_id", courseID), zap.Error(err))
		return err
	}

	uc.logger.Info("Course score updated",
		zap.String("course_id", courseID),
		zap.Int("score", score),
	)
	return nil
}

// validateCourseCreation проверяет сырой запрос целиком до нормализации,
// чтобы сообщения об ошибках ссылались на то, что прислал клиент
func (uc *CourseUseCase) validateCourseCreation(coupleID string, req dto.CreateCourseRequest) error {
	if strings.TrimSpace(coupleID) == "" {
		return errors.ErrValidation.WithMessage("Couple ID cannot be empty")
	}
	if strings.TrimSpace(req.Title) == "" {
		return errors.ErrValidation.WithMessage("Course title cannot be empty")
	}
	if strings.TrimSpace(req.Description) == "" {
		return errors.ErrValidation.WithMessage("Course description cannot be empty")
	}
	if len(req.Data) == 0 {
		return errors.ErrValidation.WithMessage("Course must have at least one POI")
	}

	if err := validator.Validate(&req); err != nil {
		return errors.ErrValidation.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}

	for i, item := range req.Data {
		if strings.TrimSpace(item.Name) == "" {
			return errors.ErrValidation.WithMessage(fmt.Sprintf("POI name cannot be empty at index %d", i))
		}
	}
	return nil
}
