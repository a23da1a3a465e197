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

// bulkImportErrorHeaders match BulkImportError field names for the excel
// error report.
var bulkImportErrorHeaders = []string{"RowNumber", "RawRow", "Reason", "ErrorType"}

// BulkImportUsersController ingests an uploaded CSV, runs the import
// pipeline, and returns the outcome. Rows that fail validation are written
// to an excel report and emailed to the uploader; they never block the rest
// of the batch.
func (uc *UserController) BulkImportUsersController(c *fiber.Ctx) error {
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

	orgName := ""
	if org, err := uc.OrgRepo.GetOrganizationByID(session.OrganizationID); err == nil {
		orgName = org.Name
	} else {
		config.Logger.Warn("Could not resolve organization name for import", zap.Error(err))
	}

	batch := import_services.BatchContext{
		OrganizationID:   session.OrganizationID,
		OrganizationName: orgName,
		RequestedBy:      session.UserEmail,
		ActivateUsers:    c.FormValue("activate_users") == "true",
	}

	result, err := uc.Pipeline.ImportUsers(c.UserContext(), string(contents), batch)
	if err != nil {
		if errors.Is(err, import_services.ErrMalformedInput) || errors.Is(err, import_services.ErrNoValidUsers) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
				"data":    nil,
				"error":   err.Error(),
			})
		}
		config.Logger.Error("Bulk user import failed at persistence", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Bulk import failed",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(uc.RedisClient, "users")

	errorReportURL := uc.deliverErrorReport(c, result, "users_import_errors", session.UserEmail)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Imported %d users", result.InsertedCount),
		"data": fiber.Map{
			"inserted_count":   result.InsertedCount,
			"emails_sent":      result.EmailsSent,
			"emails_failed":    result.EmailsFailed,
			"failed_targets":   result.FailedTargets,
			"invalid_rows":     len(result.InvalidRows),
			"error_report_url": errorReportURL,
		},
		"error": nil,
	})
}

// deliverErrorReport writes dropped rows to an excel file and emails it to
// the uploader. Both steps are best-effort; the import already succeeded.
func (uc *UserController) deliverErrorReport(c *fiber.Ctx, result *import_services.ImportResult, taskName, recipient string) string {
	if len(result.InvalidRows) == 0 {
		return ""
	}

	path, err := utils.GenerateExcel(result.InvalidRows, taskName, bulkImportErrorHeaders)
	if err != nil {
		config.Logger.Warn("Failed to generate import error report", zap.Error(err))
		return ""
	}

	mailer := utils.GetMailer()
	if mailer.IsConfigured() {
		subject := "Import error report"
		message := fmt.Sprintf("%d rows in your upload could not be imported. The attached report lists each row and the reason it was dropped.", len(result.InvalidRows))
		if err := mailer.Send(recipient, subject, message, "."+path); err != nil {
			config.Logger.Warn("Failed to email import error report", zap.Error(err), zap.String("recipient", recipient))
		}
	}

	return utils.GetDownloadURL(c, path)
}
