package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Report is a saved export definition: an entity name plus the filter set to
// apply when the report is run. Filters are stored as a JSON object of
// column -> value, the same shape the filtered list endpoints accept.
type Report struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Name   string    `gorm:"not null" json:"name"`
	Entity string    `gorm:"type:varchar(30);not null" json:"entity"` // users | assets | maintenance | reservations

	Filters datatypes.JSON `gorm:"type:jsonb" json:"filters"`

	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`

	CreatedBy string         `gorm:"not null" json:"created_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
