package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AssetStatus string

const (
	OperationalAssetStatus      AssetStatus = "operational"
	UnderMaintenanceAssetStatus AssetStatus = "under_maintenance"
	RetiredAssetStatus          AssetStatus = "retired"
)

// DefaultAssetLocation is used when an imported row leaves the location blank.
const DefaultAssetLocation = "Not specified"

// AssetCategory groups assets. Categories are created lazily during bulk
// imports when a row names a category that does not exist yet.
type AssetCategory struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Name           string    `gorm:"not null;uniqueIndex:idx_category_org" json:"name"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_category_org" json:"organization_id"`
	Description    *string   `gorm:"type:text" json:"description"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`

	CreatedBy string         `gorm:"not null" json:"created_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Asset represents a tracked facility asset
type Asset struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Name string    `gorm:"not null;index" json:"name"`

	CategoryID uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Category   *AssetCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Location string      `gorm:"not null;default:'Not specified'" json:"location"`
	Status   AssetStatus `gorm:"type:varchar(30);not null;default:'operational'" json:"status"`

	// AcquisitionDate holds the ISO calendar date exactly as reformatted from
	// the import source (day/month order reassigned positionally, never
	// validated against the calendar). Nil when the source had no usable date.
	AcquisitionDate *string `gorm:"type:varchar(10)" json:"acquisition_date"`

	PurchaseCost *decimal.Decimal `gorm:"type:decimal(18,2)" json:"purchase_cost"`
	CurrentValue *decimal.Decimal `gorm:"type:decimal(18,2)" json:"current_value"`
	SerialNumber *string          `gorm:"index" json:"serial_number"`
	Notes        *string          `gorm:"type:text" json:"notes"`

	OrganizationID uuid.UUID     `gorm:"type:uuid;not null;index" json:"organization_id"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`

	// Audit fields
	CreatedBy string         `gorm:"not null" json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *AssetCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
