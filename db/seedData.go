package db

import (
	"facility-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedDefaultAssetCategories populates a newly created organization with a
// starter set of asset categories. Admins can rename or deactivate them, and
// bulk imports add more on the fly.
func SeedDefaultAssetCategories(db *gorm.DB, organizationID uuid.UUID, createdBy string) error {
	categories := []models.AssetCategory{
		{Name: "Vehicles", IsActive: true},
		{Name: "Electronics", IsActive: true},
		{Name: "Furniture", IsActive: true},
		{Name: "HVAC", IsActive: true},
		{Name: "Machinery", IsActive: true},
		{Name: "Tools", IsActive: true},
		{Name: "Safety Equipment", IsActive: true},
	}

	for _, category := range categories {
		category.OrganizationID = organizationID
		category.CreatedBy = createdBy

		var existing models.AssetCategory
		err := db.Where("name = ? AND organization_id = ?", category.Name, organizationID).First(&existing).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&category).Error; err != nil {
					return err
				}
			} else {
				return err
			}
		}
	}
	return nil
}
