package repositories

import (
	"errors"
	"fmt"

	"facility-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationRepository interface {
	CreateOrganization(org *models.Organization) (*models.Organization, error)
	GetOrganizationByID(id uuid.UUID) (*models.Organization, error)
	GetFirstOrganization() (*models.Organization, error)
	HasOrganization() (bool, error)
	UpdateOrganization(org *models.Organization) (*models.Organization, error)
}

type organizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) CreateOrganization(org *models.Organization) (*models.Organization, error) {
	var existing models.Organization
	err := r.db.Where("name = ?", org.Name).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("an organization with that name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for existing organization: %w", err)
	}

	org.ID = uuid.New()
	if err := r.db.Create(org).Error; err != nil {
		return nil, fmt.Errorf("failed to create organization in database: %w", err)
	}
	return org, nil
}

func (r *organizationRepository) GetOrganizationByID(id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	err := r.db.First(&org, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("organization with id '%s' not found", id)
		}
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) GetFirstOrganization() (*models.Organization, error) {
	var org models.Organization
	err := r.db.Order("created_at ASC").First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// HasOrganization reports whether the setup wizard has already run.
func (r *organizationRepository) HasOrganization() (bool, error) {
	var count int64
	if err := r.db.Model(&models.Organization{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *organizationRepository) UpdateOrganization(org *models.Organization) (*models.Organization, error) {
	result := r.db.Save(org)
	if result.Error != nil {
		return nil, result.Error
	}
	return org, nil
}
