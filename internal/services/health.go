package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/localnerve/jam-build-breezemeta/internal/config"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Contexts     map[string]string `json:"contexts"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

func (r *HealthCheckResult) fail(message string) {
	r.Status = "unhealthy"
	if r.ErrorMessage == "" {
		r.ErrorMessage = message
	} else {
		r.ErrorMessage += "; " + message
	}
}

// HealthCheck pings the database, when there is one, and builds every
// registered metadata context.
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, svc *MetadataService, log *zap.Logger) HealthCheckResult {
	result := HealthCheckResult{
		Status:   "healthy",
		Contexts: make(map[string]string),
		Details:  make(map[string]string),
	}

	if db == nil {
		result.Database = "disabled"
	} else if sqlDB, err := db.DB(); err != nil {
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.fail(fmt.Sprintf("Database connection error: %v", err))
		log.Warn("health check failed - database connection", zap.Error(err))
	} else if err := sqlDB.PingContext(ctx); err != nil {
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.fail(fmt.Sprintf("Database ping failed: %v", err))
		log.Warn("health check failed - database ping", zap.Error(err))
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	var failed []string
	for _, name := range svc.Contexts() {
		if _, err := svc.Build(ctx, name); err != nil {
			result.Contexts[name] = "error"
			result.Details[name+"_error"] = err.Error()
			failed = append(failed, name)
			continue
		}
		result.Contexts[name] = "ok"
	}
	if len(failed) > 0 {
		result.fail("Metadata build failed: " + strings.Join(failed, ", "))
		log.Warn("health check failed - metadata", zap.Strings("contexts", failed))
	}

	if result.Status == "healthy" {
		log.Info("health check passed - all systems operational")
	}

	return result
}
