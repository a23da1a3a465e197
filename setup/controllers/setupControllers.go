package controllers

import (
	"facility-backend/config"
	"facility-backend/db"
	"facility-backend/db/models"
	"facility-backend/setup/repositories"
	user_repositories "facility-backend/users/repositories"
	user_services "facility-backend/users/services"
	"facility-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupController drives the first-run wizard: one organization plus its
// first system administrator. It runs before any session exists.
type SetupController struct {
	OrgRepo  repositories.OrganizationRepository
	UserRepo user_repositories.UserRepository
	DB       *gorm.DB
}

// GetSetupStatusController reports whether the wizard has already run.
func (sc *SetupController) GetSetupStatusController(c *fiber.Ctx) error {
	initialized, err := sc.OrgRepo.HasOrganization()
	if err != nil {
		config.Logger.Error("Failed to check setup status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to check setup status",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Setup status retrieved",
		"data":    fiber.Map{"initialized": initialized},
		"error":   nil,
	})
}

type initializeRequest struct {
	OrganizationName string  `json:"organization_name"`
	ContactEmail     string  `json:"contact_email"`
	Address          *string `json:"address"`
	Phone            *string `json:"phone"`
	AdminFullName    string  `json:"admin_full_name"`
	AdminEmail       string  `json:"admin_email"`
}

// InitializeController creates the organization and its first system
// administrator in one shot. The admin's temporary password is generated,
// emailed, and never returned in the response.
func (sc *SetupController) InitializeController(c *fiber.Ctx) error {
	initialized, err := sc.OrgRepo.HasOrganization()
	if err != nil {
		config.Logger.Error("Failed to check setup status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to check setup status",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	if initialized {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Setup has already been completed",
			"data":    nil,
			"error":   "already_initialized",
		})
	}

	var req initializeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if req.OrganizationName == "" || req.AdminFullName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: organization_name and admin_full_name are required",
			"data":    nil,
			"error":   "organization_name and admin_full_name are required",
		})
	}
	if !user_services.ValidateEmailFormat(req.AdminEmail) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: invalid admin email address",
			"data":    nil,
			"error":   "invalid admin email address",
		})
	}

	contactEmail := req.ContactEmail
	if contactEmail == "" {
		contactEmail = req.AdminEmail
	}

	org, err := sc.OrgRepo.CreateOrganization(&models.Organization{
		Name:         req.OrganizationName,
		ContactEmail: contactEmail,
		Address:      req.Address,
		Phone:        req.Phone,
		Active:       true,
		CreatedBy:    req.AdminEmail,
	})
	if err != nil {
		config.Logger.Error("Failed to create organization", zap.Error(err), zap.String("name", req.OrganizationName))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create organization",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	tempPassword := user_services.GeneratePassword(user_services.DefaultPasswordLength)
	admin := models.User{
		FullName:       req.AdminFullName,
		Email:          req.AdminEmail,
		Username:       user_services.GenerateUsername(req.AdminEmail),
		Password:       tempPassword,
		RoleID:         models.SystemAdminRoleID,
		Status:         models.PendingActivationUserStatus,
		OrganizationID: org.ID,
		CreatedBy:      req.AdminEmail,
	}

	createdAdmin, err := sc.UserRepo.CreateUser(&admin)
	if err != nil {
		config.Logger.Error("Failed to create initial administrator", zap.Error(err), zap.String("email", req.AdminEmail))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Organization created but the administrator could not be created",
			"data":    fiber.Map{"organization": org},
			"error":   err.Error(),
		})
	}

	if err := db.SeedDefaultAssetCategories(sc.DB, org.ID, req.AdminEmail); err != nil {
		config.Logger.Warn("Failed to seed default asset categories", zap.Error(err))
	}

	emailed := false
	mailer := utils.GetMailer()
	if mailer.IsConfigured() {
		subject := "Your " + org.Name + " administrator account"
		message := "Hello " + createdAdmin.FullName + ",\n\nYour administrator account for " + org.Name + " has been created.\nUsername: " + createdAdmin.Username + "\nTemporary password: " + tempPassword + "\n\nPlease change it after your first login."
		if err := mailer.Send(createdAdmin.Email, subject, message, ""); err != nil {
			config.Logger.Warn("Failed to send administrator credential email", zap.Error(err), zap.String("recipient", createdAdmin.Email))
		} else {
			emailed = true
		}
	}

	config.Logger.Info("Setup completed",
		zap.String("organization_id", org.ID.String()),
		zap.String("admin_email", createdAdmin.Email),
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Setup completed successfully",
		"data": fiber.Map{
			"organization":        org,
			"administrator":       createdAdmin,
			"credentials_emailed": emailed,
		},
		"error": nil,
	})
}
