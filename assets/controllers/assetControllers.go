package controllers

import (
	"strings"

	"facility-backend/assets/repositories"
	asset_services "facility-backend/assets/services"
	"facility-backend/config"
	"facility-backend/db/models"
	import_services "facility-backend/imports/services"
	"facility-backend/middleware"
	setup_repositories "facility-backend/setup/repositories"
	"facility-backend/utils"
	"facility-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type AssetController struct {
	AssetRepo   repositories.AssetRepository
	OrgRepo     setup_repositories.OrganizationRepository
	Pipeline    *import_services.ImportPipeline
	RedisClient *redis.Client
}

type assetRequest struct {
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	Location        string           `json:"location"`
	Status          string           `json:"status"`
	AcquisitionDate string           `json:"acquisition_date"`
	PurchaseCost    *decimal.Decimal `json:"purchase_cost"`
	CurrentValue    *decimal.Decimal `json:"current_value"`
	SerialNumber    *string          `json:"serial_number"`
	Notes           *string          `json:"notes"`
}

func (ac *AssetController) CreateAsset(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	var req assetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if req.Name == "" || req.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: name and category are required",
			"data":    nil,
			"error":   "name and category are required",
		})
	}

	category, err := ac.AssetRepo.GetOrCreateCategory(req.Category, session.OrganizationID, session.UserEmail)
	if err != nil {
		config.Logger.Error("Failed to resolve asset category", zap.Error(err), zap.String("category", req.Category))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to resolve asset category",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	location := req.Location
	if location == "" {
		location = models.DefaultAssetLocation
	}
	status := models.AssetStatus(strings.ToLower(req.Status))
	if status != models.UnderMaintenanceAssetStatus && status != models.RetiredAssetStatus {
		status = models.OperationalAssetStatus
	}

	asset := models.Asset{
		Name:            req.Name,
		CategoryID:      category.ID,
		Location:        location,
		Status:          status,
		AcquisitionDate: asset_services.ReformatAcquisitionDate(req.AcquisitionDate),
		PurchaseCost:    req.PurchaseCost,
		CurrentValue:    req.CurrentValue,
		SerialNumber:    req.SerialNumber,
		Notes:           req.Notes,
		OrganizationID:  session.OrganizationID,
		CreatedBy:       session.UserEmail,
	}

	created, err := ac.AssetRepo.CreateAsset(&asset)
	if err != nil {
		config.Logger.Error("Failed to create asset", zap.Error(err), zap.String("name", req.Name))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong while creating the asset",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(ac.RedisClient, "assets")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Asset created successfully",
		"data":    created,
		"error":   nil,
	})
}

func (ac *AssetController) GetFilteredAssetsController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	offset := (params.Page - 1) * params.PageSize
	assets, total, err := ac.AssetRepo.GetFilteredAssets(session.OrganizationID, params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch paginated assets", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch assets"})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(c, assets, total, params))
}

func (ac *AssetController) RetrieveSingleAssetController(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid asset ID",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	asset, err := ac.AssetRepo.GetAssetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Asset not found",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Asset retrieved successfully",
		"data":    asset,
		"error":   nil,
	})
}

func (ac *AssetController) UpdateAssetController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	asset, err := ac.AssetRepo.GetAssetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Asset not found",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	var req assetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if req.Name != "" {
		asset.Name = req.Name
	}
	if req.Category != "" {
		category, err := ac.AssetRepo.GetOrCreateCategory(req.Category, session.OrganizationID, session.UserEmail)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to resolve asset category",
				"data":    nil,
				"error":   err.Error(),
			})
		}
		asset.CategoryID = category.ID
	}
	if req.Location != "" {
		asset.Location = req.Location
	}
	if req.Status != "" {
		status := models.AssetStatus(strings.ToLower(req.Status))
		if status == models.UnderMaintenanceAssetStatus || status == models.RetiredAssetStatus || status == models.OperationalAssetStatus {
			asset.Status = status
		}
	}
	if req.AcquisitionDate != "" {
		asset.AcquisitionDate = asset_services.ReformatAcquisitionDate(req.AcquisitionDate)
	}
	if req.PurchaseCost != nil {
		asset.PurchaseCost = req.PurchaseCost
	}
	if req.CurrentValue != nil {
		asset.CurrentValue = req.CurrentValue
	}
	if req.SerialNumber != nil {
		asset.SerialNumber = req.SerialNumber
	}
	if req.Notes != nil {
		asset.Notes = req.Notes
	}
	asset.UpdatedBy = &session.UserEmail

	updated, err := ac.AssetRepo.UpdateAsset(asset)
	if err != nil {
		config.Logger.Error("Failed to update asset", zap.Error(err), zap.String("id", asset.ID.String()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update asset",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(ac.RedisClient, "assets")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Asset updated successfully",
		"data":    updated,
		"error":   nil,
	})
}

func (ac *AssetController) DeleteAssetController(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid asset ID",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if err := ac.AssetRepo.DeleteAsset(id); err != nil {
		config.Logger.Error("Failed to delete asset", zap.Error(err), zap.String("id", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete asset",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(ac.RedisClient, "assets")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Asset deleted successfully",
		"data":    nil,
		"error":   nil,
	})
}

func (ac *AssetController) GetCategoriesController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	categories, err := ac.AssetRepo.GetAllCategories(session.OrganizationID)
	if err != nil {
		config.Logger.Error("Failed to fetch asset categories", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch asset categories",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Categories retrieved successfully",
		"data":    categories,
		"error":   nil,
	})
}
