package router

import (
	"facility-backend/imports/controllers"
	"facility-backend/imports/repositories"
	import_services "facility-backend/imports/services"
	"facility-backend/middleware"
	"facility-backend/websocket"

	"github.com/gofiber/fiber/v2"
)

func InitImportRoutes(
	app *fiber.App,
	errorRepo repositories.ImportErrorRepository,
	progress *import_services.ProgressReporter,
	wsHandler *websocket.WsHandler,
) {
	importController := &controllers.ImportController{
		ErrorRepo: errorRepo,
		Progress:  progress,
	}

	// The websocket endpoint carries progress one way to connected admins.
	app.Get("/ws/imports", wsHandler.HandleWebSocket)

	protectedRoutes := app.Group("/api/v1")
	protectedRoutes.Use(middleware.RequireSession())
	{
		importRoutes := protectedRoutes.Group("/imports")
		{
			importRoutes.Get("/progress", importController.GetProgressController)
			importRoutes.Post("/progress/acknowledge", importController.AcknowledgeProgressController)
			importRoutes.Get("/errors", importController.GetImportErrorsController)
			importRoutes.Delete("/errors", importController.ClearImportErrorsController)
		}
	}
}
