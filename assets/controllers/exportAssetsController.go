package controllers

import (
	"facility-backend/config"
	"facility-backend/middleware"
	"facility-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var assetExportHeaders = []string{"name", "category", "location", "status", "acquisition_date", "serial_number", "created_at"}

// ExportAssetsController streams the organization's assets as a CSV
// download, honoring the same filters as the filtered list endpoint.
func (ac *AssetController) ExportAssetsController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	filters := make(map[string]string)
	for _, key := range []string{"status", "category_id", "location", "name", "start_date", "end_date"} {
		if v := c.Query(key); v != "" {
			filters[key] = v
		}
	}

	assets, total, err := ac.AssetRepo.GetFilteredAssets(session.OrganizationID, 1<<30, 0, filters)
	if err != nil {
		config.Logger.Error("Failed to fetch assets for export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to export assets",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	rows := make([][]string, 0, total)
	for _, a := range assets {
		categoryName := ""
		if a.Category != nil {
			categoryName = a.Category.Name
		}
		acquisitionDate := ""
		if a.AcquisitionDate != nil {
			acquisitionDate = *a.AcquisitionDate
		}
		serialNumber := ""
		if a.SerialNumber != nil {
			serialNumber = *a.SerialNumber
		}
		rows = append(rows, []string{
			a.Name,
			categoryName,
			a.Location,
			string(a.Status),
			acquisitionDate,
			serialNumber,
			utils.FormatTimestamp(a.CreatedAt),
		})
	}

	return utils.WriteCSV(c, utils.ExportFileName("assets"), assetExportHeaders, rows)
}

// DownloadAssetTemplateController serves the CSV template for asset imports.
func (ac *AssetController) DownloadAssetTemplateController(c *fiber.Ctx) error {
	headers := []string{"name", "category", "location", "status", "acquisitionDate"}
	rows := [][]string{
		{"Forklift", "Vehicles", "Warehouse B", "operational", "15/03/2024"},
	}
	return utils.WriteCSV(c, "assets_import_template.csv", headers, rows)
}
