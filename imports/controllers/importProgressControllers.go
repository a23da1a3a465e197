package controllers

import (
	"facility-backend/config"
	"facility-backend/imports/repositories"
	import_services "facility-backend/imports/services"
	"facility-backend/middleware"
	"facility-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ImportController struct {
	ErrorRepo repositories.ImportErrorRepository
	Progress  *import_services.ProgressReporter
}

// GetProgressController returns the current dispatch progress snapshot.
// Clients that miss websocket frames poll this to resynchronize.
func (ic *ImportController) GetProgressController(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Progress retrieved",
		"data":    ic.Progress.Snapshot(),
		"error":   nil,
	})
}

// AcknowledgeProgressController hides the progress view once the admin has
// seen the final state. Dispatch itself always runs to completion.
func (ic *ImportController) AcknowledgeProgressController(c *fiber.Ctx) error {
	ic.Progress.Acknowledge()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Progress acknowledged",
		"data":    ic.Progress.Snapshot(),
		"error":   nil,
	})
}

// GetImportErrorsController lists dropped rows from past imports, optionally
// scoped to one entity via the entity query parameter.
func (ic *ImportController) GetImportErrorsController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entity := c.Query("entity")
	offset := (params.Page - 1) * params.PageSize
	rows, total, err := ic.ErrorRepo.GetBulkImportErrors(session.OrganizationID, entity, params.PageSize, offset)
	if err != nil {
		config.Logger.Error("Failed to fetch import errors", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch import errors"})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(c, rows, total, params))
}

// ClearImportErrorsController deletes logged import errors, optionally
// scoped to one entity.
func (ic *ImportController) ClearImportErrorsController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	entity := c.Query("entity")
	if err := ic.ErrorRepo.ClearBulkImportErrors(session.OrganizationID, entity); err != nil {
		config.Logger.Error("Failed to clear import errors", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to clear import errors",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Import errors cleared",
		"data":    nil,
		"error":   nil,
	})
}
