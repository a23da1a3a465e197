package controllers

import (
	"facility-backend/config"
	"facility-backend/db/models"
	import_services "facility-backend/imports/services"
	"facility-backend/middleware"
	setup_repositories "facility-backend/setup/repositories"
	"facility-backend/users/repositories"
	"facility-backend/users/services"
	"facility-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type UserController struct {
	UserRepo    repositories.UserRepository
	OrgRepo     setup_repositories.OrganizationRepository
	Pipeline    *import_services.ImportPipeline
	Progress    *import_services.ProgressReporter
	RedisClient *redis.Client
}

type createUserRequest struct {
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	RoleID      int     `json:"role_id"`
	JobPosition *string `json:"job_position"`
	Phone       *string `json:"phone"`
}

// CreateUser handles the manual single-user path. When no password is
// supplied a temporary one is generated and emailed, mirroring the bulk
// import behavior.
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if !services.ValidateEmailFormat(req.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: invalid email address",
			"data":    nil,
			"error":   "invalid email address",
		})
	}

	tempPassword := req.Password
	generated := false
	if tempPassword == "" {
		tempPassword = services.GeneratePassword(services.DefaultPasswordLength)
		generated = true
	} else if validationError := services.ValidatePassword(tempPassword); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: " + validationError,
			"data":    nil,
			"error":   validationError,
		})
	}

	if req.RoleID == 0 {
		req.RoleID = models.StandardUserRoleID
	}

	user := models.User{
		FullName:       req.FullName,
		Email:          req.Email,
		Username:       services.GenerateUsername(req.Email),
		Password:       tempPassword,
		RoleID:         req.RoleID,
		JobPosition:    req.JobPosition,
		Phone:          req.Phone,
		Status:         models.PendingActivationUserStatus,
		OrganizationID: session.OrganizationID,
		CreatedBy:      session.UserEmail,
	}

	if validationError := services.ValidateUser(&user); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: " + validationError,
			"data":    nil,
			"error":   validationError,
		})
	}

	createdUser, err := uc.UserRepo.CreateUser(&user)
	if err != nil {
		config.Logger.Error("Failed to create user in database", zap.Error(err), zap.String("email", user.Email))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong while creating user in the database",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync(uc.RedisClient, "users")

	// Best-effort credential email; the account exists either way.
	if generated {
		mailer := utils.GetMailer()
		if mailer.IsConfigured() {
			subject := "Your account"
			message := "Hello " + createdUser.FullName + ",\n\nYour account has been created.\nUsername: " + createdUser.Username + "\nTemporary password: " + tempPassword + "\n\nPlease change it after your first login."
			if err := mailer.Send(createdUser.Email, subject, message, ""); err != nil {
				config.Logger.Warn("Failed to send credential email", zap.Error(err), zap.String("recipient", createdUser.Email))
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"data":    createdUser,
		"error":   nil,
	})
}
