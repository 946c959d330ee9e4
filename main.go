package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"friendapp-api/config"
	"friendapp-api/database"
	"friendapp-api/logger"
	"friendapp-api/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// No .env file is fine; the environment wins either way.
	}

	logger.Init()
	defer logger.Sync()

	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL, cfg.AppEnv)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", err)
	}

	if cfg.SeedData {
		if err := database.Seed(db); err != nil {
			logger.Warn("Failed to seed database", "error", err)
		}
	}

	if cfg.AppEnv == "development" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(routes.SetupCORS())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	routes.SetupRoutes(router, db, cfg)

	logger.Info("Starting FriendApp API server", "port", cfg.Port, "google_auth", cfg.GoogleAuthEnabled)

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", err)
	}
}
