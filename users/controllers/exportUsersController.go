package controllers

import (
	"facility-backend/config"
	"facility-backend/db/models"
	"facility-backend/middleware"
	"facility-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var userExportHeaders = []string{"full_name", "email", "username", "role", "status", "created_at"}

// ExportUsersController streams the organization's users as a CSV download,
// honoring the same filters as the filtered list endpoint.
func (uc *UserController) ExportUsersController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	filters := make(map[string]string)
	for _, key := range []string{"status", "role_id", "search", "start_date", "end_date"} {
		if v := c.Query(key); v != "" {
			filters[key] = v
		}
	}

	// Exports are unpaginated; fetch everything that matches.
	users, total, err := uc.UserRepo.GetFilteredUsers(session.OrganizationID, 1<<30, 0, filters)
	if err != nil {
		config.Logger.Error("Failed to fetch users for export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to export users",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	rows := make([][]string, 0, total)
	for _, u := range users {
		rows = append(rows, []string{
			u.FullName,
			u.Email,
			u.Username,
			models.RoleName(u.RoleID),
			string(u.Status),
			utils.FormatTimestamp(u.CreatedAt),
		})
	}

	return utils.WriteCSV(c, utils.ExportFileName("users"), userExportHeaders, rows)
}

// DownloadUserTemplateController serves the CSV template admins fill in for
// bulk imports.
func (uc *UserController) DownloadUserTemplateController(c *fiber.Ctx) error {
	headers := []string{"name", "email", "role", "job_position"}
	rows := [][]string{
		{"Jane Doe", "jane.doe@example.com", "Standard User", "Facilities Officer"},
	}
	return utils.WriteCSV(c, "users_import_template.csv", headers, rows)
}
