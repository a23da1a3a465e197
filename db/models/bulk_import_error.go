package models

import (
	"time"

	"github.com/google/uuid"
)

type BulkImportErrorType string

const (
	MissingDataErrorType BulkImportErrorType = "MISSING_DATA"
	DuplicateErrorType   BulkImportErrorType = "DUPLICATE"
	ParseErrorType       BulkImportErrorType = "PARSE_ERROR"
)

type AddedViaType string

const (
	BulkAddedViaType   AddedViaType = "BULK_IMPORT"
	ManualAddedViaType AddedViaType = "MANUAL"
)

// BulkImportError records one dropped CSV row so the uploader can inspect and
// resubmit it. These rows never block the rest of the batch.
type BulkImportError struct {
	ID        uuid.UUID           `gorm:"type:uuid;primary_key;" json:"id"`
	Entity    string              `gorm:"type:varchar(20);not null" json:"entity"` // users | assets
	RowNumber int                 `json:"row_number"`
	RawRow    string              `gorm:"type:text" json:"raw_row"`
	Reason    string              `json:"reason"`
	ErrorType BulkImportErrorType `json:"error_type"`
	AddedVia  AddedViaType        `json:"added_via"`

	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`

	CreatedBy string    `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
