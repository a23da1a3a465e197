package controllers

import (
	"errors"
	"fmt"
	"io"

	"facility-backend/config"
	import_services "facility-backend/imports/services"
	"facility-backend/middleware"
	"facility-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var bulkImportErrorHeaders = []string{"RowNumber", "RawRow", "Reason", "ErrorType"}

// BulkImportAssetsController ingests an uploaded asset CSV and runs the
// import pipeline. Asset imports stop at persistence; no emails go to
// imported rows, only the error report goes to the uploader.
func (ac *AssetController) BulkImportAssetsController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No file uploaded",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not open uploaded file",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read uploaded file",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	batch := import_services.BatchContext{
		OrganizationID: session.OrganizationID,
		RequestedBy:    session.UserEmail,
	}

	result, err := ac.Pipeline.ImportAssets(c.UserContext(), string(contents), batch)
	if err != nil {
		if errors.Is(err, import_services.ErrMalformedInput) || errors.Is(err, import_services.ErrNoValidAssets) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
				"data":    nil,
				"error":   err.Error(),
			})
		}
		config.Logger.Error("Bulk asset import failed at persistence", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Bulk import failed",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(ac.RedisClient, "assets")

	errorReportURL := ""
	if len(result.InvalidRows) > 0 {
		path, genErr := utils.GenerateExcel(result.InvalidRows, "assets_import_errors", bulkImportErrorHeaders)
		if genErr != nil {
			config.Logger.Warn("Failed to generate import error report", zap.Error(genErr))
		} else {
			errorReportURL = utils.GetDownloadURL(c, path)
			mailer := utils.GetMailer()
			if mailer.IsConfigured() {
				message := fmt.Sprintf("%d rows in your asset upload could not be imported. The attached report lists each row and the reason it was dropped.", len(result.InvalidRows))
				if sendErr := mailer.Send(session.UserEmail, "Import error report", message, "."+path); sendErr != nil {
					config.Logger.Warn("Failed to email import error report", zap.Error(sendErr), zap.String("recipient", session.UserEmail))
				}
			}
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Imported %d assets", result.InsertedCount),
		"data": fiber.Map{
			"inserted_count":   result.InsertedCount,
			"invalid_rows":     len(result.InvalidRows),
			"error_report_url": errorReportURL,
		},
		"error": nil,
	})
}
