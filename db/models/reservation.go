package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationStatus string

const (
	PendingReservationStatus   ReservationStatus = "pending"
	ApprovedReservationStatus  ReservationStatus = "approved"
	CancelledReservationStatus ReservationStatus = "cancelled"
	ExpiredReservationStatus   ReservationStatus = "expired"
)

// Reservation blocks out an asset for one user over a time window.
type Reservation struct {
	ID      uuid.UUID `gorm:"type:uuid;not null;primary_key;" json:"id"`
	AssetID uuid.UUID `gorm:"type:uuid;not null;index" json:"asset_id"`
	Asset   *Asset    `gorm:"foreignKey:AssetID;references:ID" json:"asset,omitempty"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`

	StartTime time.Time         `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time         `gorm:"not null" json:"end_time"`
	Status    ReservationStatus `gorm:"not null;default:'pending'" json:"status"`
	Purpose   *string           `gorm:"type:text" json:"purpose"`

	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`

	CreatedBy string         `gorm:"not null" json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
