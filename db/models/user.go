package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role identifiers form a closed set. Free-text labels coming from CSV
// imports are mapped onto these by the role resolver.
const (
	SystemAdminRoleID   = 1
	AdminOfficialRoleID = 2
	PersonnelRoleID     = 3
	StandardUserRoleID  = 4
)

// RoleName returns the display label for a role ID.
func RoleName(roleID int) string {
	switch roleID {
	case SystemAdminRoleID:
		return "System Administrator"
	case AdminOfficialRoleID:
		return "Admin Official"
	case PersonnelRoleID:
		return "Personnel"
	default:
		return "Standard User"
	}
}

type UserStatus string

const (
	ActiveUserStatus            UserStatus = "active"
	PendingActivationUserStatus UserStatus = "pending_activation"
	InactiveUserStatus          UserStatus = "inactive"
)

// User represents system users with role-based access
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	FullName string    `gorm:"not null" json:"full_name"`
	Email    string    `gorm:"unique;not null" json:"email"`
	Username string    `gorm:"unique;not null;index" json:"username"`
	Password string    `json:"-"` // Never include in JSON responses

	RoleID      int     `gorm:"not null;default:4" json:"role_id"`
	JobPosition *string `json:"job_position"`
	Phone       *string `json:"phone"`

	OrganizationID uuid.UUID     `gorm:"type:uuid;not null;index" json:"organization_id"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`

	// Status
	Status      UserStatus `gorm:"type:varchar(30);not null;default:'pending_activation'" json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`

	// Audit fields
	CreatedBy string         `gorm:"not null" json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
