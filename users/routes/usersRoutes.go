package router

import (
	import_services "facility-backend/imports/services"
	"facility-backend/middleware"
	setup_repositories "facility-backend/setup/repositories"
	"facility-backend/users/controllers"
	"facility-backend/users/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func InitUserRoutes(
	app *fiber.App,
	userRepo repositories.UserRepository,
	orgRepo setup_repositories.OrganizationRepository,
	pipeline *import_services.ImportPipeline,
	progress *import_services.ProgressReporter,
	redisClient *redis.Client,
) {
	userController := &controllers.UserController{
		UserRepo:    userRepo,
		OrgRepo:     orgRepo,
		Pipeline:    pipeline,
		Progress:    progress,
		RedisClient: redisClient,
	}

	protectedRoutes := app.Group("/api/v1")
	protectedRoutes.Use(middleware.RequireSession())
	{
		userRoutes := protectedRoutes.Group("/users")
		{
			// Specific routes first
			userRoutes.Get("/filtered", userController.GetFilteredUsersController)
			userRoutes.Get("/export", userController.ExportUsersController)
			userRoutes.Get("/import/template", userController.DownloadUserTemplateController)
			userRoutes.Post("/import", userController.BulkImportUsersController)

			// General routes
			userRoutes.Get("/", userController.GetAllUsersController)
			userRoutes.Post("/", userController.CreateUser)

			// ID-based routes
			userRoutes.Get("/:id", userController.RetrieveSingleUserController)
			userRoutes.Patch("/:id", userController.UpdateUserController)
			userRoutes.Delete("/:id", userController.DeleteUserController)
		}
	}
}
