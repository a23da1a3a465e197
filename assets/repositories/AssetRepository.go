package repositories

import (
	"errors"
	"fmt"
	"strings"

	"facility-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssetRepository interface {
	CreateAsset(asset *models.Asset) (*models.Asset, error)
	BulkCreateAssets(assets []models.Asset) error
	GetAssetByID(id string) (*models.Asset, error)
	UpdateAsset(asset *models.Asset) (*models.Asset, error)
	DeleteAsset(id string) error
	GetFilteredAssets(organizationID uuid.UUID, pageSize int, offset int, filters map[string]string) ([]models.Asset, int64, error)
	GetOrCreateCategory(name string, organizationID uuid.UUID, createdBy string) (*models.AssetCategory, error)
	GetAllCategories(organizationID uuid.UUID) ([]models.AssetCategory, error)
	CountAssets(organizationID uuid.UUID) (int64, error)
}

type assetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{
		db: db,
	}
}

func (r *assetRepository) CreateAsset(asset *models.Asset) (*models.Asset, error) {
	asset.ID = uuid.New()
	if err := r.db.Create(asset).Error; err != nil {
		return nil, fmt.Errorf("failed to create asset in database: %w", err)
	}
	return asset, nil
}

// BulkCreateAssets inserts an import batch inside one transaction. The whole
// batch rolls back on the first failure.
func (r *assetRepository) BulkCreateAssets(assets []models.Asset) error {
	if len(assets) == 0 {
		return fmt.Errorf("no assets to create")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&assets, 100).Error
	})
}

func (r *assetRepository) GetAssetByID(id string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.Preload("Category").First(&asset, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("asset with id '%s' not found", id)
		}
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) UpdateAsset(asset *models.Asset) (*models.Asset, error) {
	result := r.db.Save(asset)
	if result.Error != nil {
		return nil, result.Error
	}
	return asset, nil
}

func (r *assetRepository) DeleteAsset(id string) error {
	return r.db.Delete(&models.Asset{}, "id = ?", id).Error
}

// GetOrCreateCategory resolves a category by name within the organization,
// creating it on first reference. Bulk imports rely on this to register
// categories lazily.
func (r *assetRepository) GetOrCreateCategory(name string, organizationID uuid.UUID, createdBy string) (*models.AssetCategory, error) {
	category := models.AssetCategory{
		Name:           name,
		OrganizationID: organizationID,
	}
	err := r.db.
		Where("name = ? AND organization_id = ?", name, organizationID).
		Attrs(models.AssetCategory{ID: uuid.New(), IsActive: true, CreatedBy: createdBy}).
		FirstOrCreate(&category).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve asset category '%s': %w", name, err)
	}
	return &category, nil
}

func (r *assetRepository) GetAllCategories(organizationID uuid.UUID) ([]models.AssetCategory, error) {
	var categories []models.AssetCategory
	err := r.db.Where("organization_id = ?", organizationID).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *assetRepository) CountAssets(organizationID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.Model(&models.Asset{}).Where("organization_id = ?", organizationID).Count(&total).Error
	return total, err
}

// GetFilteredAssets retrieves assets with filtering and pagination
func (r *assetRepository) GetFilteredAssets(organizationID uuid.UUID, pageSize int, offset int, filters map[string]string) ([]models.Asset, int64, error) {
	var assets []models.Asset
	var total int64

	db := r.db.Model(&models.Asset{}).Where("organization_id = ?", organizationID)

	// Apply filters
	for key, value := range filters {
		switch key {
		case "status":
			db = db.Where("status = ?", strings.ToLower(value))
		case "category_id":
			db = db.Where("category_id = ?", value)
		case "location":
			db = db.Where("location ILIKE ?", "%"+value+"%")
		case "name":
			db = db.Where("name ILIKE ?", "%"+value+"%")
		case "start_date":
			db = db.Where("Date(created_at) >= ?", value)
		case "end_date":
			db = db.Where("Date(created_at) <= ?", value)
		}
	}

	// Count total records with filters applied
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination and ordering
	if err := db.Limit(pageSize).Offset(offset).Order("created_at DESC").Preload("Category").Find(&assets).Error; err != nil {
		return nil, 0, err
	}

	return assets, total, nil
}
