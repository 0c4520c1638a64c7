package handler

import (
	"github.com/course-microservice/internal/delivery/http/middleware"
	"github.com/course-microservice/internal/pkg/utils"
	"github.com/course-microservice/internal/usecase"
	"github.com/course-microservice/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CourseHandler - обработчик запросов к курсам
type CourseHandler struct {
	courseUC *usecase.CourseUseCase
	logger   *zap.Logger
}

// NewCourseHandler - создание нового CourseHandler
func NewCourseHandler(courseUC *usecase.CourseUseCase, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		courseUC: courseUC,
		logger:   logger,
	}
}

// Create - создание курса из упорядоченного списка POI
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course payload"
// @Success 201 {object} utils.SuccessResponse{data=dto.CourseResponse}
// @Router /api/v1/courses [post]
func (h *CourseHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.courseUC.CreateCourse(c.Context(), middleware.CoupleID(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, dto.FromCourse(result.Course))
}

// List - курсы пары со связями в стабильном порядке
// @Summary List couple courses
// @Tags courses
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.CourseResponse}
// @Router /api/v1/courses [get]
func (h *CourseHandler) List(c *fiber.Ctx) error {
	courses, err := h.courseUC.ListCourses(c.Context(), middleware.CoupleID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		result = append(result, dto.FromCourse(course))
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result),
	})
}

// Delete - удаление курса пары
// @Summary Delete a course
// @Tags courses
// @Param id path string true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/courses/{id} [delete]
func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	courseID := c.Params("id")

	if err := h.courseUC.DeleteCourse(c.Context(), middleware.CoupleID(c), courseID); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": courseID}, nil)
}

// UpdateScore - обновление оценки курса
// @Summary Update course score
// @Tags courses
// @Accept json
// @Param id path string true "Course ID"
// @Param request body dto.UpdateCourseScoreRequest true "Score payload"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/courses/{id}/score [patch]
func (h *CourseHandler) UpdateScore(c *fiber.Ctx) error {
	courseID := c.Params("id")

	var req dto.UpdateCourseScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Score == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Score is required"})
	}

	if err := h.courseUC.UpdateScore(c.Context(), middleware.CoupleID(c), courseID, *req.Score); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"course_id": courseID,
		"score":     *req.Score,
	}, nil)
}
