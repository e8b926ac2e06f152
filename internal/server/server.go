// server.go
//
// Breeze client metadata for gorm models, served alongside the jam-build data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-breezemeta.
// jam-build-breezemeta is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-breezemeta is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-breezemeta.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package server wires the metadata HTTP surface.
package server

import (
	"errors"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/localnerve/jam-build-breezemeta/docs/api" // Swagger docs
	"github.com/localnerve/jam-build-breezemeta/internal/config"
	"github.com/localnerve/jam-build-breezemeta/internal/handlers"
	"github.com/localnerve/jam-build-breezemeta/internal/middleware"
	"github.com/localnerve/jam-build-breezemeta/internal/services"
	"github.com/localnerve/jam-build-breezemeta/internal/types"
	"github.com/localnerve/jam-build-breezemeta/internal/utils"
)

// Deps are the collaborators of the HTTP app. DB may be nil.
type Deps struct {
	Config     *config.Config
	DB         *gorm.DB
	Metadata   *services.MetadataService
	Logger     *zap.Logger
	Registerer prometheus.Registerer
	AccessLog  bool
}

// New creates the fiber app with every route registered.
func New(d Deps) *fiber.App {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	if d.AccessLog {
		app.Use(logger.New())
	}
	app.Use(compress.New())

	// Prometheus metrics
	prom := fiberprometheus.NewWithRegistry(d.Registerer, "breezemeta", "http", "", nil)
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	healthHandler := &handlers.HealthHandler{Config: d.Config, DB: d.DB, Service: d.Metadata, Logger: d.Logger}
	api.Get("/health", healthHandler.GetHealth)

	metadataHandler := &handlers.MetadataHandler{Service: d.Metadata, Logger: d.Logger}
	breeze := api.Group("/breeze", middleware.VersionMiddleware(d.Metadata.Version()))
	breeze.Get("/", metadataHandler.ListContexts)
	breeze.Get("/:context/Metadata", metadataHandler.GetMetadata)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	return app
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		return utils.CustomErrorResponse(c, ce)
	}

	code := fiber.StatusInternalServerError
	message := err.Error()

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code == fiber.StatusConflict {
		return utils.VersionErrorResponse(c, message)
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      types.ErrorTypeUnknown,
	})
}
