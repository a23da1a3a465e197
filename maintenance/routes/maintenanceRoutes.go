package router

import (
	"facility-backend/maintenance/controllers"
	"facility-backend/maintenance/repositories"
	"facility-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func InitMaintenanceRoutes(
	app *fiber.App,
	maintenanceRepo repositories.MaintenanceRepository,
	redisClient *redis.Client,
) {
	maintenanceController := &controllers.MaintenanceController{
		MaintenanceRepo: maintenanceRepo,
		RedisClient:     redisClient,
	}

	protectedRoutes := app.Group("/api/v1")
	protectedRoutes.Use(middleware.RequireSession())
	{
		maintenanceRoutes := protectedRoutes.Group("/maintenance")
		{
			maintenanceRoutes.Get("/filtered", maintenanceController.GetFilteredTasksController)
			maintenanceRoutes.Post("/", maintenanceController.CreateTaskController)
			maintenanceRoutes.Get("/:id", maintenanceController.RetrieveSingleTaskController)
			maintenanceRoutes.Patch("/:id", maintenanceController.UpdateTaskController)
			maintenanceRoutes.Delete("/:id", maintenanceController.DeleteTaskController)
		}
	}
}
