package controllers

import (
	"time"

	"facility-backend/config"
	"facility-backend/db/models"
	"facility-backend/maintenance/repositories"
	"facility-backend/maintenance/services"
	"facility-backend/middleware"
	"facility-backend/utils"
	"facility-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type MaintenanceController struct {
	MaintenanceRepo repositories.MaintenanceRepository
	RedisClient     *redis.Client
}

type maintenanceTaskRequest struct {
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	AssetID       string  `json:"asset_id"`
	Status        string  `json:"status"`
	Priority      string  `json:"priority"`
	ScheduledDate string  `json:"scheduled_date"`
	AssignedToID  *string `json:"assigned_to_id"`
}

func (mc *MaintenanceController) CreateTaskController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	var req maintenanceTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if req.Title == "" || req.AssetID == "" || req.ScheduledDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: title, asset_id and scheduled_date are required",
			"data":    nil,
			"error":   "title, asset_id and scheduled_date are required",
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

	scheduledDate, err := time.ParseInLocation("2006-01-02", req.ScheduledDate, utils.DateLocation)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid scheduled_date, expected YYYY-MM-DD",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	var assignedTo *uuid.UUID
	if req.AssignedToID != nil {
		assignedTo = utils.StringToUUIDPtr(*req.AssignedToID)
	}

	task := models.MaintenanceTask{
		Title:          req.Title,
		Description:    req.Description,
		AssetID:        assetID,
		Status:         services.MapStatus(req.Status),
		Priority:       services.MapPriority(req.Priority),
		ScheduledDate:  scheduledDate,
		AssignedToID:   assignedTo,
		OrganizationID: session.OrganizationID,
		CreatedBy:      session.UserEmail,
	}

	created, err := mc.MaintenanceRepo.CreateTask(&task)
	if err != nil {
		config.Logger.Error("Failed to create maintenance task", zap.Error(err), zap.String("title", req.Title))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong while creating the maintenance task",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(mc.RedisClient, "maintenance")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Maintenance task created successfully",
		"data":    created,
		"error":   nil,
	})
}

func (mc *MaintenanceController) GetFilteredTasksController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	offset := (params.Page - 1) * params.PageSize
	tasks, total, err := mc.MaintenanceRepo.GetFilteredTasks(session.OrganizationID, params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch paginated maintenance tasks", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch maintenance tasks"})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(c, tasks, total, params))
}

func (mc *MaintenanceController) RetrieveSingleTaskController(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid task ID",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	task, err := mc.MaintenanceRepo.GetTaskByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Maintenance task not found",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Maintenance task retrieved successfully",
		"data":    task,
		"error":   nil,
	})
}

func (mc *MaintenanceController) UpdateTaskController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	task, err := mc.MaintenanceRepo.GetTaskByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Maintenance task not found",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	var req maintenanceTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Status != "" {
		task.Status = services.MapStatus(req.Status)
		if task.Status == models.CompletedMaintenanceStatus && task.CompletedAt == nil {
			now := time.Now()
			task.CompletedAt = &now
		}
	}
	if req.Priority != "" {
		task.Priority = services.MapPriority(req.Priority)
	}
	if req.ScheduledDate != "" {
		scheduledDate, err := time.ParseInLocation("2006-01-02", req.ScheduledDate, utils.DateLocation)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid scheduled_date, expected YYYY-MM-DD",
				"data":    nil,
				"error":   err.Error(),
			})
		}
		task.ScheduledDate = scheduledDate
		// A rescheduled task is eligible for a fresh reminder.
		task.ReminderSentAt = nil
	}
	if req.AssignedToID != nil {
		task.AssignedToID = utils.StringToUUIDPtr(*req.AssignedToID)
	}
	task.UpdatedBy = &session.UserEmail

	updated, err := mc.MaintenanceRepo.UpdateTask(task)
	if err != nil {
		config.Logger.Error("Failed to update maintenance task", zap.Error(err), zap.String("id", task.ID.String()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update maintenance task",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(mc.RedisClient, "maintenance")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Maintenance task updated successfully",
		"data":    updated,
		"error":   nil,
	})
}

func (mc *MaintenanceController) DeleteTaskController(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid task ID",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if err := mc.MaintenanceRepo.DeleteTask(id); err != nil {
		config.Logger.Error("Failed to delete maintenance task", zap.Error(err), zap.String("id", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete maintenance task",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(mc.RedisClient, "maintenance")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Maintenance task deleted successfully",
		"data":    nil,
		"error":   nil,
	})
}
