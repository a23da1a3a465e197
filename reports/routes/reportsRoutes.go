package router

import (
	asset_repositories "facility-backend/assets/repositories"
	maintenance_repositories "facility-backend/maintenance/repositories"
	"facility-backend/middleware"
	"facility-backend/reports/controllers"
	"facility-backend/reports/repositories"
	reservation_repositories "facility-backend/reservations/repositories"
	user_repositories "facility-backend/users/repositories"

	"github.com/gofiber/fiber/v2"
)

func InitReportRoutes(
	app *fiber.App,
	reportRepo repositories.ReportRepository,
	userRepo user_repositories.UserRepository,
	assetRepo asset_repositories.AssetRepository,
	maintenanceRepo maintenance_repositories.MaintenanceRepository,
	reservationRepo reservation_repositories.ReservationRepository,
) {
	reportController := &controllers.ReportController{
		ReportRepo:      reportRepo,
		UserRepo:        userRepo,
		AssetRepo:       assetRepo,
		MaintenanceRepo: maintenanceRepo,
		ReservationRepo: reservationRepo,
	}

	protectedRoutes := app.Group("/api/v1")
	protectedRoutes.Use(middleware.RequireSession())
	{
		reportRoutes := protectedRoutes.Group("/reports")
		{
			reportRoutes.Get("/", reportController.GetAllReportsController)
			reportRoutes.Post("/", reportController.CreateReportController)
			reportRoutes.Get("/:id/run", reportController.RunReportController)
			reportRoutes.Delete("/:id", reportController.DeleteReportController)
		}
	}
}
