package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaintenanceStatus string

const (
	PendingMaintenanceStatus    MaintenanceStatus = "pending"
	InProgressMaintenanceStatus MaintenanceStatus = "in_progress"
	CompletedMaintenanceStatus  MaintenanceStatus = "completed"
	OverdueMaintenanceStatus    MaintenanceStatus = "overdue"
)

type MaintenancePriority string

const (
	LowMaintenancePriority      MaintenancePriority = "low"
	MediumMaintenancePriority   MaintenancePriority = "medium"
	HighMaintenancePriority     MaintenancePriority = "high"
	CriticalMaintenancePriority MaintenancePriority = "critical"
)

// MaintenanceTask is a scheduled or ad-hoc maintenance job against one asset.
type MaintenanceTask struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`

	AssetID uuid.UUID `gorm:"type:uuid;not null;index" json:"asset_id"`
	Asset   *Asset    `gorm:"foreignKey:AssetID" json:"asset,omitempty"`

	Status   MaintenanceStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Priority MaintenancePriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`

	ScheduledDate time.Time  `gorm:"not null;index" json:"scheduled_date"`
	CompletedAt   *time.Time `json:"completed_at"`

	AssignedToID *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to_id"`
	AssignedTo   *User      `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`

	ReminderSentAt *time.Time `json:"reminder_sent_at"`

	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`

	// Audit fields
	CreatedBy string         `gorm:"not null" json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *MaintenanceTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
