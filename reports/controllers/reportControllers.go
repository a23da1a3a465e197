package controllers

import (
	"encoding/json"

	asset_repositories "facility-backend/assets/repositories"
	"facility-backend/config"
	"facility-backend/db/models"
	maintenance_repositories "facility-backend/maintenance/repositories"
	"facility-backend/middleware"
	"facility-backend/reports/repositories"
	reservation_repositories "facility-backend/reservations/repositories"
	user_repositories "facility-backend/users/repositories"
	"facility-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// reportEntities is the closed set of exportable entities.
var reportEntities = map[string]bool{
	"users":        true,
	"assets":       true,
	"maintenance":  true,
	"reservations": true,
}

type ReportController struct {
	ReportRepo      repositories.ReportRepository
	UserRepo        user_repositories.UserRepository
	AssetRepo       asset_repositories.AssetRepository
	MaintenanceRepo maintenance_repositories.MaintenanceRepository
	ReservationRepo reservation_repositories.ReservationRepository
}

type createReportRequest struct {
	Name    string            `json:"name"`
	Entity  string            `json:"entity"`
	Filters map[string]string `json:"filters"`
}

func (rc *ReportController) CreateReportController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	var req createReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if req.Name == "" || !reportEntities[req.Entity] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: name is required and entity must be one of users, assets, maintenance, reservations",
			"data":    nil,
			"error":   "invalid report definition",
		})
	}

	filtersJSON, err := json.Marshal(req.Filters)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid filters",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	report := models.Report{
		Name:           req.Name,
		Entity:         req.Entity,
		Filters:        datatypes.JSON(filtersJSON),
		OrganizationID: session.OrganizationID,
		CreatedBy:      session.UserEmail,
	}

	created, err := rc.ReportRepo.CreateReport(&report)
	if err != nil {
		config.Logger.Error("Failed to create report", zap.Error(err), zap.String("name", req.Name))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong while creating the report",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Report created successfully",
		"data":    created,
		"error":   nil,
	})
}

func (rc *ReportController) GetAllReportsController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	reports, err := rc.ReportRepo.GetAllReports(session.OrganizationID)
	if err != nil {
		config.Logger.Error("Failed to fetch reports", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch reports",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Reports retrieved successfully",
		"data":    reports,
		"error":   nil,
	})
}

func (rc *ReportController) DeleteReportController(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid report ID",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if err := rc.ReportRepo.DeleteReport(id); err != nil {
		config.Logger.Error("Failed to delete report", zap.Error(err), zap.String("id", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete report",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Report deleted successfully",
		"data":    nil,
		"error":   nil,
	})
}

// RunReportController executes a saved report and streams the result as a
// CSV download.
func (rc *ReportController) RunReportController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	report, err := rc.ReportRepo.GetReportByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Report not found",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	filters := make(map[string]string)
	if len(report.Filters) > 0 {
		if err := json.Unmarshal(report.Filters, &filters); err != nil {
			config.Logger.Warn("Report has malformed filters, running unfiltered",
				zap.Error(err),
				zap.String("report_id", report.ID.String()),
			)
			filters = make(map[string]string)
		}
	}

	const allRows = 1 << 30
	fileName := utils.ExportFileName(report.Entity)

	switch report.Entity {
	case "users":
		users, _, err := rc.UserRepo.GetFilteredUsers(session.OrganizationID, allRows, 0, filters)
		if err != nil {
			return rc.runFailed(c, err)
		}
		headers := []string{"full_name", "email", "username", "role", "status", "created_at"}
		rows := make([][]string, 0, len(users))
		for _, u := range users {
			rows = append(rows, []string{u.FullName, u.Email, u.Username, models.RoleName(u.RoleID), string(u.Status), utils.FormatTimestamp(u.CreatedAt)})
		}
		return utils.WriteCSV(c, fileName, headers, rows)

	case "assets":
		assets, _, err := rc.AssetRepo.GetFilteredAssets(session.OrganizationID, allRows, 0, filters)
		if err != nil {
			return rc.runFailed(c, err)
		}
		headers := []string{"name", "category", "location", "status", "acquisition_date", "created_at"}
		rows := make([][]string, 0, len(assets))
		for _, a := range assets {
			categoryName := ""
			if a.Category != nil {
				categoryName = a.Category.Name
			}
			acquisitionDate := ""
			if a.AcquisitionDate != nil {
				acquisitionDate = *a.AcquisitionDate
			}
			rows = append(rows, []string{a.Name, categoryName, a.Location, string(a.Status), acquisitionDate, utils.FormatTimestamp(a.CreatedAt)})
		}
		return utils.WriteCSV(c, fileName, headers, rows)

	case "maintenance":
		tasks, _, err := rc.MaintenanceRepo.GetFilteredTasks(session.OrganizationID, allRows, 0, filters)
		if err != nil {
			return rc.runFailed(c, err)
		}
		headers := []string{"title", "asset", "status", "priority", "scheduled_date", "assigned_to"}
		rows := make([][]string, 0, len(tasks))
		for _, t := range tasks {
			assetName := ""
			if t.Asset != nil {
				assetName = t.Asset.Name
			}
			assignedTo := ""
			if t.AssignedTo != nil {
				assignedTo = t.AssignedTo.Email
			}
			rows = append(rows, []string{t.Title, assetName, string(t.Status), string(t.Priority), t.ScheduledDate.Format("2006-01-02"), assignedTo})
		}
		return utils.WriteCSV(c, fileName, headers, rows)

	case "reservations":
		reservations, _, err := rc.ReservationRepo.GetFilteredReservations(session.OrganizationID, allRows, 0, filters)
		if err != nil {
			return rc.runFailed(c, err)
		}
		headers := []string{"asset", "user", "start_time", "end_time", "status", "purpose"}
		rows := make([][]string, 0, len(reservations))
		for _, r := range reservations {
			assetName := ""
			if r.Asset != nil {
				assetName = r.Asset.Name
			}
			userEmail := ""
			if r.User != nil {
				userEmail = r.User.Email
			}
			purpose := ""
			if r.Purpose != nil {
				purpose = *r.Purpose
			}
			rows = append(rows, []string{assetName, userEmail, utils.FormatTimestamp(r.StartTime), utils.FormatTimestamp(r.EndTime), string(r.Status), purpose})
		}
		return utils.WriteCSV(c, fileName, headers, rows)
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Report has an unknown entity",
		"data":    nil,
		"error":   "unknown entity: " + report.Entity,
	})
}

func (rc *ReportController) runFailed(c *fiber.Ctx, err error) error {
	config.Logger.Error("Failed to run report", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Failed to run report",
		"data":    nil,
		"error":   err.Error(),
	})
}
