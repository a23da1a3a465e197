package controllers

import (
	"facility-backend/config"
	"facility-backend/middleware"
	"facility-backend/users/services"
	"facility-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (uc *UserController) GetAllUsersController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	users, err := uc.UserRepo.GetAllUsers(session.OrganizationID)
	if err != nil {
		config.Logger.Error("Failed to fetch users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch users",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Users retrieved successfully",
		"data":    users,
		"error":   nil,
	})
}

func (uc *UserController) RetrieveSingleUserController(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	user, err := uc.UserRepo.GetUserByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User retrieved successfully",
		"data":    user,
		"error":   nil,
	})
}

type updateUserRequest struct {
	FullName    *string `json:"full_name"`
	RoleID      *int    `json:"role_id"`
	JobPosition *string `json:"job_position"`
	Phone       *string `json:"phone"`
	Status      *string `json:"status"`
}

func (uc *UserController) UpdateUserController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	id := c.Params("id")
	user, err := uc.UserRepo.GetUserByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.RoleID != nil {
		user.RoleID = *req.RoleID
	}
	if req.JobPosition != nil {
		user.JobPosition = req.JobPosition
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Status != nil {
		user.Status = services.NormalizeUserStatus(*req.Status)
	}
	user.UpdatedBy = &session.UserEmail

	if validationError := services.ValidateUser(user); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: " + validationError,
			"data":    nil,
			"error":   validationError,
		})
	}

	updated, err := uc.UserRepo.UpdateUser(user)
	if err != nil {
		config.Logger.Error("Failed to update user", zap.Error(err), zap.String("id", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update user",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(uc.RedisClient, "users")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User updated successfully",
		"data":    updated,
		"error":   nil,
	})
}

func (uc *UserController) DeleteUserController(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if err := uc.UserRepo.DeleteUser(id); err != nil {
		config.Logger.Error("Failed to delete user", zap.Error(err), zap.String("id", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete user",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(uc.RedisClient, "users")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User deleted successfully",
		"data":    nil,
		"error":   nil,
	})
}
