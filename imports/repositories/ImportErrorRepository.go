package repositories

import (
	"facility-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImportErrorRepository interface {
	LogBulkImportErrors(rows []models.BulkImportError) error
	LogEmailsSent(logs []models.EmailLog) error
	GetBulkImportErrors(organizationID uuid.UUID, entity string, pageSize int, offset int) ([]models.BulkImportError, int64, error)
	ClearBulkImportErrors(organizationID uuid.UUID, entity string) error
}

type importErrorRepository struct {
	db *gorm.DB
}

func NewImportErrorRepository(db *gorm.DB) ImportErrorRepository {
	return &importErrorRepository{db: db}
}

func (r *importErrorRepository) LogBulkImportErrors(rows []models.BulkImportError) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&rows, 100).Error
}

func (r *importErrorRepository) LogEmailsSent(logs []models.EmailLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&logs, 100).Error
}

func (r *importErrorRepository) GetBulkImportErrors(organizationID uuid.UUID, entity string, pageSize int, offset int) ([]models.BulkImportError, int64, error) {
	var rows []models.BulkImportError
	var total int64

	db := r.db.Model(&models.BulkImportError{}).Where("organization_id = ?", organizationID)
	if entity != "" {
		db = db.Where("entity = ?", entity)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Limit(pageSize).Offset(offset).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *importErrorRepository) ClearBulkImportErrors(organizationID uuid.UUID, entity string) error {
	db := r.db.Where("organization_id = ?", organizationID)
	if entity != "" {
		db = db.Where("entity = ?", entity)
	}
	return db.Delete(&models.BulkImportError{}).Error
}
