package controllers

import (
	"time"

	"facility-backend/config"
	"facility-backend/db/models"
	"facility-backend/middleware"
	"facility-backend/reservations/repositories"
	"facility-backend/utils"
	"facility-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ReservationController struct {
	ReservationRepo repositories.ReservationRepository
	RedisClient     *redis.Client
}

type reservationRequest struct {
	AssetID   string  `json:"asset_id"`
	UserID    string  `json:"user_id"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Purpose   *string `json:"purpose"`
}

func (rc *ReservationController) CreateReservationController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	var req reservationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid asset ID",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid start_time, expected RFC3339",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid end_time, expected RFC3339",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	if !endTime.After(startTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: end_time must be after start_time",
			"data":    nil,
			"error":   "end_time must be after start_time",
		})
	}

	reservation := models.Reservation{
		AssetID:        assetID,
		UserID:         userID,
		StartTime:      startTime,
		EndTime:        endTime,
		Status:         models.PendingReservationStatus,
		Purpose:        req.Purpose,
		OrganizationID: session.OrganizationID,
		CreatedBy:      session.UserEmail,
	}

	created, err := rc.ReservationRepo.CreateReservation(&reservation)
	if err != nil {
		config.Logger.Warn("Failed to create reservation", zap.Error(err), zap.String("asset_id", req.AssetID))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Could not create reservation",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(rc.RedisClient, "reservations")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Reservation created successfully",
		"data":    created,
		"error":   nil,
	})
}

func (rc *ReservationController) GetFilteredReservationsController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	offset := (params.Page - 1) * params.PageSize
	reservations, total, err := rc.ReservationRepo.GetFilteredReservations(session.OrganizationID, params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch paginated reservations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch reservations"})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(c, reservations, total, params))
}

func (rc *ReservationController) RetrieveSingleReservationController(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid reservation ID",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	reservation, err := rc.ReservationRepo.GetReservationByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Reservation not found",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Reservation retrieved successfully",
		"data":    reservation,
		"error":   nil,
	})
}

type reservationStatusRequest struct {
	Status string `json:"status"`
}

// ApproveReservationController moves a pending reservation to approved or
// back to pending.
func (rc *ReservationController) UpdateReservationStatusController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	reservation, err := rc.ReservationRepo.GetReservationByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Reservation not found",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	var req reservationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	switch models.ReservationStatus(req.Status) {
	case models.ApprovedReservationStatus:
		reservation.Status = models.ApprovedReservationStatus
	case models.PendingReservationStatus:
		reservation.Status = models.PendingReservationStatus
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: status must be approved or pending",
			"data":    nil,
			"error":   "invalid status",
		})
	}
	reservation.UpdatedBy = &session.UserEmail

	updated, err := rc.ReservationRepo.UpdateReservation(reservation)
	if err != nil {
		config.Logger.Error("Failed to update reservation", zap.Error(err), zap.String("id", reservation.ID.String()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update reservation",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(rc.RedisClient, "reservations")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Reservation updated successfully",
		"data":    updated,
		"error":   nil,
	})
}

func (rc *ReservationController) CancelReservationController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid reservation ID",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	cancelled, err := rc.ReservationRepo.CancelReservation(id, session.UserEmail)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Reservation not found",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(rc.RedisClient, "reservations")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Reservation cancelled successfully",
		"data":    cancelled,
		"error":   nil,
	})
}
