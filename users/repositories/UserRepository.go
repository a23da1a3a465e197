package repositories

import (
	"errors"
	"fmt"
	"strings"

	"facility-backend/db/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	BulkCreateUsers(users []models.User) ([]models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	UpdateUser(user *models.User) (*models.User, error)
	DeleteUser(id string) error
	GetAllUsers(organizationID uuid.UUID) ([]models.User, error)
	GetFilteredUsers(organizationID uuid.UUID, pageSize int, offset int, filters map[string]string) ([]models.User, int64, error)
	CountUsers(organizationID uuid.UUID) (int64, error)
}

// Implementations
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (r *userRepository) CreateUser(user *models.User) (*models.User, error) {
	// Hash password
	hashedPassword, err := HashPassword(user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Check if user exists (including soft-deleted)
	var existing models.User
	err = r.db.Unscoped().Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		// Email found
		if existing.DeletedAt.Valid {
			// Soft-deleted: restore
			existing.DeletedAt = gorm.DeletedAt{}
			existing.FullName = user.FullName
			existing.Username = user.Username
			existing.Password = hashedPassword
			existing.RoleID = user.RoleID
			existing.JobPosition = user.JobPosition
			existing.Phone = user.Phone
			existing.Status = user.Status
			existing.CreatedBy = user.CreatedBy

			if err := r.db.Unscoped().Save(&existing).Error; err != nil {
				return nil, fmt.Errorf("failed to restore soft-deleted user: %w", err)
			}
			return &existing, nil
		} else {
			// Active user with same email already exists
			return nil, fmt.Errorf("a user with that email already exists")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		// Unexpected DB error
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}

	// Create a new user
	user.ID = uuid.New()
	user.Password = hashedPassword

	if err := r.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user in database: %w", err)
	}

	return user, nil
}

// BulkCreateUsers inserts an import batch inside one transaction. Records
// arrive with passwords already hashed by the import pipeline, so no hashing
// happens here. The whole batch rolls back on the first failure.
func (r *userRepository) BulkCreateUsers(users []models.User) ([]models.User, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to create")
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&users, 100).Error
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Organization").First(&user, "id = ?", id).Error
	return &user, err
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", strings.ToLower(email)).Error
	return &user, err
}

func (r *userRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "username = ?", username).Error
	return &user, err
}

func (r *userRepository) UpdateUser(user *models.User) (*models.User, error) {
	result := r.db.Save(user)
	if result.Error != nil {
		return nil, result.Error
	}
	return user, nil
}

func (r *userRepository) DeleteUser(id string) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

func (r *userRepository) GetAllUsers(organizationID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("organization_id = ?", organizationID).Order("created_at desc").Find(&users).Error
	return users, err
}

func (r *userRepository) CountUsers(organizationID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.Model(&models.User{}).Where("organization_id = ?", organizationID).Count(&total).Error
	return total, err
}

func (r *userRepository) GetFilteredUsers(organizationID uuid.UUID, pageSize int, offset int, filters map[string]string) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	db := r.db.Model(&models.User{}).Where("organization_id = ?", organizationID)

	// Apply filters
	for key, value := range filters {
		switch key {
		case "status":
			db = db.Where("status = ?", strings.ToLower(value))
		case "role_id":
			db = db.Where("role_id = ?", value)
		case "search":
			like := "%" + strings.ToLower(value) + "%"
			db = db.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(username) LIKE ?", like, like, like)
		case "start_date":
			db = db.Where("created_at >= ?", value)
		case "end_date":
			db = db.Where("created_at <= ?", value)
		}
	}

	// Count total records with filters applied
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	if err := db.Limit(pageSize).Offset(offset).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
