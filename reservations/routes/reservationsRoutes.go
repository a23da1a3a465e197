package router

import (
	"facility-backend/middleware"
	"facility-backend/reservations/controllers"
	"facility-backend/reservations/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func InitReservationRoutes(
	app *fiber.App,
	reservationRepo repositories.ReservationRepository,
	redisClient *redis.Client,
) {
	reservationController := &controllers.ReservationController{
		ReservationRepo: reservationRepo,
		RedisClient:     redisClient,
	}

	protectedRoutes := app.Group("/api/v1")
	protectedRoutes.Use(middleware.RequireSession())
	{
		reservationRoutes := protectedRoutes.Group("/reservations")
		{
			reservationRoutes.Get("/filtered", reservationController.GetFilteredReservationsController)
			reservationRoutes.Post("/", reservationController.CreateReservationController)
			reservationRoutes.Get("/:id", reservationController.RetrieveSingleReservationController)
			reservationRoutes.Patch("/:id/status", reservationController.UpdateReservationStatusController)
			reservationRoutes.Post("/:id/cancel", reservationController.CancelReservationController)
		}
	}
}
