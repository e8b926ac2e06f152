// common.go
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

package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/localnerve/jam-build-breezemeta/internal/metadata"
	"github.com/localnerve/jam-build-breezemeta/internal/services"
	"github.com/localnerve/jam-build-breezemeta/internal/types"
)

// classifyError maps a build failure to the status and type reported to
// the client. Unexpected failures are logged.
func classifyError(name string, err error, log *zap.Logger) *types.CustomError {
	switch {
	case errors.Is(err, services.ErrContextNotFound):
		return &types.CustomError{
			Code:    fiber.StatusNotFound,
			Message: fmt.Sprintf("Metadata context '%s' not found", name),
			Type:    types.ErrorTypeNotFound,
		}
	case errors.Is(err, metadata.ErrUnsupportedModel):
		orNop(log).Warn("unsupported model", zap.String("context", name), zap.Error(err))
		return &types.CustomError{
			Code:    fiber.StatusInternalServerError,
			Message: err.Error(),
			Type:    types.ErrorTypeUnsupportedModel,
		}
	}

	orNop(log).Error("metadata request failed", zap.String("context", name), zap.Error(err))
	return &types.CustomError{
		Code:    fiber.StatusInternalServerError,
		Message: err.Error(),
		Type:    types.ErrorTypeUnknown,
	}
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
