package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/itinerary-engine/internal/config"
	"github.com/itinerary-engine/internal/delivery/http/handler"
	"github.com/itinerary-engine/internal/delivery/http/middleware"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server is the Fiber HTTP server.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	itineraryHandler  *handler.ItineraryHandler
	suggestionHandler *handler.SuggestionHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	itineraryHandler *handler.ItineraryHandler,
	suggestionHandler *handler.SuggestionHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Itinerary Engine",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		itineraryHandler:  itineraryHandler,
		suggestionHandler: suggestionHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

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

	// Itinerary routes
	api.Post("/itineraries/generate", s.itineraryHandler.Generate)
	api.Post("/itineraries/:id/regenerate-day", s.itineraryHandler.RegenerateDay)
	api.Post("/itineraries/:id/reorder", s.itineraryHandler.Reorder)
	api.Get("/itineraries/:id/budget", s.itineraryHandler.GetBudget)
	api.Get("/itineraries/:id", s.itineraryHandler.Get)
	api.Delete("/itineraries/:id", s.itineraryHandler.Delete)

	// Destination routes
	api.Post("/destinations/suggest", s.suggestionHandler.Suggest)
}

// Start begins listening on the configured address.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
