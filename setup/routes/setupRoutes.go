package router

import (
	"facility-backend/setup/controllers"
	"facility-backend/setup/repositories"
	user_repositories "facility-backend/users/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// InitSetupRoutes registers the first-run wizard. These routes are public:
// they run before any user exists to authenticate.
func InitSetupRoutes(
	app *fiber.App,
	orgRepo repositories.OrganizationRepository,
	userRepo user_repositories.UserRepository,
	db *gorm.DB,
) {
	setupController := &controllers.SetupController{
		OrgRepo:  orgRepo,
		UserRepo: userRepo,
		DB:       db,
	}

	publicRoutes := app.Group("/api/v1")
	{
		publicRoutes.Get("/setup/status", setupController.GetSetupStatusController)
		publicRoutes.Post("/setup", setupController.InitializeController)
	}
}
