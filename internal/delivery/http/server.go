package http

import (
	"context"
	"time"

	"github.com/course-microservice/internal/config"
	"github.com/course-microservice/internal/delivery/http/handler"
	"github.com/course-microservice/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	courseHandler *handler.CourseHandler
	reviewHandler *handler.ReviewHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	courseHandler *handler.CourseHandler,
	reviewHandler *handler.ReviewHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Course Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		courseHandler: courseHandler,
		reviewHandler: reviewHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Все доменные маршруты требуют аутентифицированную пару/пользователя
	authorized := api.Group("", middleware.Auth(s.config.Auth.JWTSecret))

	// Course routes
	authorized.Post("/courses", s.courseHandler.Create)
	authorized.Get("/courses", s.courseHandler.List)
	authorized.Delete("/courses/:id", s.courseHandler.Delete)
	authorized.Patch("/courses/:id/score", s.courseHandler.UpdateScore)

	// Review routes
	authorized.Put("/pois/:id/review", s.reviewHandler.Upsert)
	authorized.Put("/pois/reviews", s.reviewHandler.UpsertBulk)
	authorized.Get("/pois/:id/reviews/summary", s.reviewHandler.Summary)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err),
		)

		return c.Status(status).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    statusErrorCode(status),
				"message": err.Error(),
			},
		})
	}
}

// statusErrorCode подбирает код ошибки под статус в том же словаре,
// что и коды AppError, отдаваемые через utils.SendError
func statusErrorCode(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return "NOT_FOUND"
	case status == fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case status >= 400 && status < 500:
		return "INVALID_REQUEST"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
