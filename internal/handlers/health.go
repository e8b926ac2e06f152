package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/localnerve/jam-build-breezemeta/internal/config"
	"github.com/localnerve/jam-build-breezemeta/internal/services"
)

// HealthHandler reports service health
type HealthHandler struct {
	Config  *config.Config
	DB      *gorm.DB
	Service *services.MetadataService
	Logger  *zap.Logger
}

// GetHealth handles GET /api/health
// @Summary Service health
// @Description Ping the database and build every metadata context
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.DB, h.Service, orNop(h.Logger))
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
