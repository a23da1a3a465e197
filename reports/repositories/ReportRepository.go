package repositories

import (
	"errors"
	"fmt"

	"facility-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	CreateReport(report *models.Report) (*models.Report, error)
	GetReportByID(id string) (*models.Report, error)
	GetAllReports(organizationID uuid.UUID) ([]models.Report, error)
	DeleteReport(id string) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CreateReport(report *models.Report) (*models.Report, error) {
	report.ID = uuid.New()
	if err := r.db.Create(report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report in database: %w", err)
	}
	return report, nil
}

func (r *reportRepository) GetReportByID(id string) (*models.Report, error) {
	var report models.Report
	err := r.db.First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("report with id '%s' not found", id)
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) GetAllReports(organizationID uuid.UUID) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Where("organization_id = ?", organizationID).Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *reportRepository) DeleteReport(id string) error {
	return r.db.Delete(&models.Report{}, "id = ?", id).Error
}
