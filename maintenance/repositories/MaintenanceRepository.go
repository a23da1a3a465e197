package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"facility-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaintenanceRepository interface {
	CreateTask(task *models.MaintenanceTask) (*models.MaintenanceTask, error)
	GetTaskByID(id string) (*models.MaintenanceTask, error)
	UpdateTask(task *models.MaintenanceTask) (*models.MaintenanceTask, error)
	DeleteTask(id string) error
	GetFilteredTasks(organizationID uuid.UUID, pageSize int, offset int, filters map[string]string) ([]models.MaintenanceTask, int64, error)
	GetTasksDueWithin(days int) ([]models.MaintenanceTask, error)
	MarkReminderSent(taskID uuid.UUID, sentAt time.Time) error
	MarkOverdueTasks(now time.Time) (int64, error)
}

type maintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) CreateTask(task *models.MaintenanceTask) (*models.MaintenanceTask, error) {
	task.ID = uuid.New()
	if err := r.db.Create(task).Error; err != nil {
		return nil, fmt.Errorf("failed to create maintenance task in database: %w", err)
	}
	return task, nil
}

func (r *maintenanceRepository) GetTaskByID(id string) (*models.MaintenanceTask, error) {
	var task models.MaintenanceTask
	err := r.db.Preload("Asset").Preload("AssignedTo").First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("maintenance task with id '%s' not found", id)
		}
		return nil, err
	}
	return &task, nil
}

func (r *maintenanceRepository) UpdateTask(task *models.MaintenanceTask) (*models.MaintenanceTask, error) {
	result := r.db.Save(task)
	if result.Error != nil {
		return nil, result.Error
	}
	return task, nil
}

func (r *maintenanceRepository) DeleteTask(id string) error {
	return r.db.Delete(&models.MaintenanceTask{}, "id = ?", id).Error
}

// GetTasksDueWithin returns open tasks scheduled in the next N days whose
// reminder has not been sent yet. The reminder job feeds on this.
func (r *maintenanceRepository) GetTasksDueWithin(days int) ([]models.MaintenanceTask, error) {
	var tasks []models.MaintenanceTask
	now := time.Now()
	cutoff := now.AddDate(0, 0, days)

	err := r.db.
		Preload("Asset").
		Preload("AssignedTo").
		Where("status IN ?", []models.MaintenanceStatus{models.PendingMaintenanceStatus, models.InProgressMaintenanceStatus}).
		Where("scheduled_date BETWEEN ? AND ?", now, cutoff).
		Where("reminder_sent_at IS NULL").
		Where("assigned_to_id IS NOT NULL").
		Order("scheduled_date ASC").
		Find(&tasks).Error

	return tasks, err
}

func (r *maintenanceRepository) MarkReminderSent(taskID uuid.UUID, sentAt time.Time) error {
	return r.db.Model(&models.MaintenanceTask{}).
		Where("id = ?", taskID).
		Update("reminder_sent_at", sentAt).Error
}

// MarkOverdueTasks flips open tasks whose scheduled date has passed to the
// overdue status. Returns the number of rows updated.
func (r *maintenanceRepository) MarkOverdueTasks(now time.Time) (int64, error) {
	result := r.db.Model(&models.MaintenanceTask{}).
		Where("status IN ?", []models.MaintenanceStatus{models.PendingMaintenanceStatus, models.InProgressMaintenanceStatus}).
		Where("scheduled_date < ?", now).
		Update("status", models.OverdueMaintenanceStatus)
	return result.RowsAffected, result.Error
}

// GetFilteredTasks retrieves maintenance tasks with filtering and pagination
func (r *maintenanceRepository) GetFilteredTasks(organizationID uuid.UUID, pageSize int, offset int, filters map[string]string) ([]models.MaintenanceTask, int64, error) {
	var tasks []models.MaintenanceTask
	var total int64

	db := r.db.Model(&models.MaintenanceTask{}).Where("organization_id = ?", organizationID)

	// Apply filters
	for key, value := range filters {
		switch key {
		case "status":
			db = db.Where("status = ?", strings.ToLower(value))
		case "priority":
			db = db.Where("priority = ?", strings.ToLower(value))
		case "asset_id":
			db = db.Where("asset_id = ?", value)
		case "assigned_to_id":
			db = db.Where("assigned_to_id = ?", value)
		case "start_date":
			db = db.Where("Date(scheduled_date) >= ?", value)
		case "end_date":
			db = db.Where("Date(scheduled_date) <= ?", value)
		}
	}

	// Count total records with filters applied
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination and ordering
	if err := db.Limit(pageSize).Offset(offset).Order("scheduled_date ASC").Preload("Asset").Preload("AssignedTo").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}
