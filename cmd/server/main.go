package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/localnerve/jam-build-breezemeta/internal/config"
	"github.com/localnerve/jam-build-breezemeta/internal/database"
	"github.com/localnerve/jam-build-breezemeta/internal/logging"
	"github.com/localnerve/jam-build-breezemeta/internal/server"
	"github.com/localnerve/jam-build-breezemeta/internal/services"
)

// @title Breeze Metadata API
// @version 1.0.0
// @description Breeze client metadata for gorm models
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/jam-build-breezemeta
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	constraints, err := config.LoadConstraints(cfg.ConstraintsFile)
	if err != nil {
		logger.Fatal("failed to load constraints", zap.Error(err))
	}

	// The database is optional; models are read without one.
	var db *gorm.DB
	if cfg.HasDatabase() {
		db, err = database.Connect(cfg, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer database.Close(db)
	}

	svc, err := services.NewMetadataService(db, services.OptionsFromConfig(cfg, constraints, logger))
	if err != nil {
		logger.Fatal("failed to create metadata service", zap.Error(err))
	}
	if err := svc.RegisterDefaults(); err != nil {
		logger.Fatal("failed to register metadata contexts", zap.Error(err))
	}

	app := server.New(server.Deps{
		Config:    cfg,
		DB:        db,
		Metadata:  svc,
		Logger:    logger,
		AccessLog: true,
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("gracefully shutting down")
		_ = app.Shutdown()
	}()

	// Start server
	logger.Info("starting server", zap.String("port", cfg.Port), zap.Strings("contexts", svc.Contexts()))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	logger.Info("server stopped")
}
