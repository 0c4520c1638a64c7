package handler

import (
	"strconv"

	"github.com/course-microservice/internal/delivery/http/middleware"
	apperrors "github.com/course-microservice/internal/pkg/errors"
	"github.com/course-microservice/internal/pkg/utils"
	"github.com/course-microservice/internal/pkg/validator"
	"github.com/course-microservice/internal/usecase"
	"github.com/course-microservice/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReviewHandler - обработчик запросов к оценкам POI
type ReviewHandler struct {
	reviewUC *usecase.ReviewUseCase
	logger   *zap.Logger
}

// NewReviewHandler - создание нового ReviewHandler
func NewReviewHandler(reviewUC *usecase.ReviewUseCase, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: reviewUC,
		logger:   logger,
	}
}

// Upsert - выставление или обновление оценки POI
// @Summary Upsert a POI rating
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "POI ID"
// @Param request body dto.UpsertReviewRequest true "Rating payload"
// @Success 200 {object} utils.SuccessResponse{data=dto.ReviewResponse}
// @Router /api/v1/pois/{id}/review [put]
func (h *ReviewHandler) Upsert(c *fiber.Ctx) error {
	poiID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	var req dto.UpsertReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRating)
	}

	review, err := h.reviewUC.UpsertRating(c.Context(), middleware.UserID(c), poiID, req.Rating)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.FromReview(review), nil)
}

// UpsertBulk - выставление оценок нескольким POI за один запрос
// @Summary Upsert POI ratings in bulk
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body dto.UpsertReviewsRequest true "Ratings payload"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.ReviewResponse}
// @Router /api/v1/pois/reviews [put]
func (h *ReviewHandler) UpsertBulk(c *fiber.Ctx) error {
	var req dto.UpsertReviewsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrValidation.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		}))
	}

	commands := make([]usecase.RatingCommand, 0, len(req.Reviews))
	for _, item := range req.Reviews {
		commands = append(commands, usecase.RatingCommand{
			POIID:  item.POIID,
			Rating: item.Rating,
		})
	}

	reviews, err := h.reviewUC.UpsertRatings(c.Context(), middleware.UserID(c), commands)
	if err != nil {
		return utils.SendError(c, err)
	}

	result := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, dto.FromReview(review))
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result),
	})
}

// Summary - агрегат оценок POI с собственной оценкой пользователя
// @Summary Get POI rating summary
// @Tags reviews
// @Produce json
// @Param id path int true "POI ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.ReviewSummaryResponse}
// @Router /api/v1/pois/{id}/reviews/summary [get]
func (h *ReviewHandler) Summary(c *fiber.Ctx) error {
	poiID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	summary, err := h.reviewUC.Summarize(c.Context(), poiID, middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.FromReviewSummary(summary), nil)
}
