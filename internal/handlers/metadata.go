package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/localnerve/jam-build-breezemeta/internal/services"
	"github.com/localnerve/jam-build-breezemeta/internal/utils"
)

// MetadataHandler serves Breeze metadata documents
type MetadataHandler struct {
	Service *services.MetadataService
	Logger  *zap.Logger
}

// GetMetadata handles GET /api/breeze/:context/Metadata
// @Summary Get Breeze metadata
// @Description Build the Breeze client metadata document for a model context
// @Tags Metadata
// @Produce json
// @Param context path string true "Metadata context"
// @Param X-Metadata-Version header string false "Client metadata version"
// @Success 200 {object} metadata.BreezeMetadata
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /breeze/{context}/Metadata [get]
func (h *MetadataHandler) GetMetadata(c *fiber.Ctx) error {
	name := c.Params("context")

	doc, err := h.Service.Build(c.UserContext(), name)
	if err != nil {
		return utils.CustomErrorResponse(c, classifyError(name, err, h.Logger))
	}

	return c.Status(fiber.StatusOK).JSON(doc)
}

// ListContexts handles GET /api/breeze
// @Summary List metadata contexts
// @Description List the model contexts that serve metadata
// @Tags Metadata
// @Produce json
// @Success 200 {object} utils.ContextsResponseStruct
// @Router /breeze [get]
func (h *MetadataHandler) ListContexts(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, utils.ContextsResponseStruct{
		MetadataVersion: h.Service.Version(),
		Contexts:        h.Service.Contexts(),
	}, fiber.StatusOK)
}
