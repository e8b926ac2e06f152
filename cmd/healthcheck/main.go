// main.go
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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/localnerve/jam-build-breezemeta/internal/config"
	"github.com/localnerve/jam-build-breezemeta/internal/database"
	"github.com/localnerve/jam-build-breezemeta/internal/services"
	"github.com/localnerve/jam-build-breezemeta/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var db *gorm.DB
	if cfg.HasDatabase() {
		db, err = database.Connect(cfg, zap.NewNop())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close(db)
	}

	constraints, err := config.LoadConstraints(cfg.ConstraintsFile)
	if err != nil {
		log.Fatalf("Failed to load constraints: %v", err)
	}

	opts := services.OptionsFromConfig(cfg, constraints, zap.NewNop())
	opts.Registerer = nil
	svc, err := services.NewMetadataService(db, opts)
	if err != nil {
		log.Fatalf("Failed to create metadata service: %v", err)
	}
	if err := svc.RegisterDefaults(); err != nil {
		log.Fatalf("Failed to register metadata contexts: %v", err)
	}

	// Perform health check
	result := services.HealthCheck(ctx, cfg, db, svc, zap.NewNop())
	if err := utils.PingServer(cfg.Port); err != nil {
		result.Status = "unhealthy"
		result.Details["server_error"] = err.Error()
	} else {
		result.Details["server_port"] = cfg.Port
	}

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
