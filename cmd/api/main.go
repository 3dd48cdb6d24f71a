package main

// @title Itinerary Engine API
// @version 1.0.0
// @description Trip planning service that generates multi-day tourist itineraries. Scores candidate destinations, packs them into days around opening hours and pace limits, sequences each day with a nearest-neighbour walk, prices transport legs and aggregates the trip budget.
// @description
// @description Main capabilities:
// @description - Full multi-day plan generation from trip preferences
// @description - Single-day regeneration with exclusions
// @description - Replacement suggestions for individual stops
// @description - Manual reorder with atomic leg and budget recalculation
// @description - Per-trip cost breakdown

// @contact.name API Support
// @contact.email support@itinerary-engine.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/itinerary-engine/docs"
	"github.com/itinerary-engine/internal/config"
	httpDelivery "github.com/itinerary-engine/internal/delivery/http"
	"github.com/itinerary-engine/internal/delivery/http/handler"
	"github.com/itinerary-engine/internal/pkg/logger"
	"github.com/itinerary-engine/internal/repository/cache"
	"github.com/itinerary-engine/internal/repository/postgres"
	"github.com/itinerary-engine/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Itinerary Engine")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	destinationRepo := postgres.NewDestinationRepository(db)
	transportRateRepo := postgres.NewTransportRateRepository(db)
	itineraryRepo := postgres.NewItineraryRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	pricer := usecase.NewTransportPricer(
		transportRateRepo,
		cfg.Engine.FallbackFareTable(),
		log,
	)

	generateUC := usecase.NewGenerateUseCase(
		destinationRepo,
		itineraryRepo,
		cacheRepo,
		pricer,
		usecase.GeneratorOptions{
			AvgSpeedKmh: cfg.Engine.AvgSpeedKmh,
			DayStart:    cfg.Engine.DayStart,
		},
		log,
	)

	reorderUC := usecase.NewReorderUseCase(
		itineraryRepo,
		destinationRepo,
		cacheRepo,
		pricer,
		log,
	)

	budgetUC := usecase.NewBudgetUseCase(
		itineraryRepo,
		cacheRepo,
		log,
		cfg.Cache.BudgetCacheTTL,
	)

	itineraryUC := usecase.NewItineraryUseCase(
		itineraryRepo,
		cacheRepo,
		log,
	)

	suggestionUC := usecase.NewSuggestionUseCase(
		destinationRepo,
		cacheRepo,
		log,
		cfg.Cache.SuggestionCacheTTL,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	itineraryHandler := handler.NewItineraryHandler(generateUC, reorderUC, budgetUC, itineraryUC, log)
	suggestionHandler := handler.NewSuggestionHandler(suggestionUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		itineraryHandler,
		suggestionHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
