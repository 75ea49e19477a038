package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/modan/fas/internal/cache"
	"github.com/modan/fas/internal/config"
	"github.com/modan/fas/internal/database"
	"github.com/modan/fas/internal/logger"
	"github.com/modan/fas/internal/payment"
	"github.com/modan/fas/internal/router"
	"github.com/modan/fas/internal/task"
)

func main() {
	// .env is optional; real deployments configure through config.yaml/env
	_ = godotenv.Load()

	cfg := config.Load()

	if err := logger.Setup(cfg.Log.Level, cfg.Log.Output, cfg.Log.File); err != nil {
		logger.Fatal("Failed to setup logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	cacheClient := cache.New(cfg.Redis)
	payClient := payment.New(cfg.Payment)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.Setup(db, cacheClient, payClient, cfg)

	manager := task.Start(db, cfg)
	defer manager.Stop()

	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
