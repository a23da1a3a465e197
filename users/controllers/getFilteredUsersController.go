package controllers

import (
	"facility-backend/config"
	"facility-backend/middleware"
	"facility-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (uc *UserController) GetFilteredUsersController(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	offset := (params.Page - 1) * params.PageSize
	users, total, err := uc.UserRepo.GetFilteredUsers(session.OrganizationID, params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch paginated users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(c, users, total, params))
}
