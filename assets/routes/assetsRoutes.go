package router

import (
	"facility-backend/assets/controllers"
	"facility-backend/assets/repositories"
	import_services "facility-backend/imports/services"
	"facility-backend/middleware"
	setup_repositories "facility-backend/setup/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func InitAssetRoutes(
	app *fiber.App,
	assetRepo repositories.AssetRepository,
	orgRepo setup_repositories.OrganizationRepository,
	pipeline *import_services.ImportPipeline,
	redisClient *redis.Client,
) {
	assetController := &controllers.AssetController{
		AssetRepo:   assetRepo,
		OrgRepo:     orgRepo,
		Pipeline:    pipeline,
		RedisClient: redisClient,
	}

	protectedRoutes := app.Group("/api/v1")
	protectedRoutes.Use(middleware.RequireSession())
	{
		assetRoutes := protectedRoutes.Group("/assets")
		{
			// Specific routes first
			assetRoutes.Get("/filtered", assetController.GetFilteredAssetsController)
			assetRoutes.Get("/export", assetController.ExportAssetsController)
			assetRoutes.Get("/import/template", assetController.DownloadAssetTemplateController)
			assetRoutes.Post("/import", assetController.BulkImportAssetsController)
			assetRoutes.Get("/categories", assetController.GetCategoriesController)

			// General routes
			assetRoutes.Post("/", assetController.CreateAsset)

			// ID-based routes
			assetRoutes.Get("/:id", assetController.RetrieveSingleAssetController)
			assetRoutes.Patch("/:id", assetController.UpdateAssetController)
			assetRoutes.Delete("/:id", assetController.DeleteAssetController)
		}
	}
}
