// main.go
package main

import (
	"log"
	"time"

	"hotel-booking/cmd"
	"hotel-booking/internal/data/cache"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/queue"
	"hotel-booking/internal/wire"
	rediscache "hotel-booking/pkg/cache"
	"hotel-booking/pkg/database"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis is optional; availability checks fall back to the database
	redisClient := rediscache.InitRedis(config.Redis)
	if redisClient == nil {
		logger.Warn("Redis unreachable, availability cache disabled")
	} else {
		logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))
	}

	availCache := cache.NewAvailabilityCache(
		redisClient,
		time.Duration(config.Redis.CacheTTLSecs)*time.Second,
		logger,
	)

	// Event publisher for the concierge front-ends
	publisher := queue.NewPublisher(config.Queue, logger)

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, availCache, publisher, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
