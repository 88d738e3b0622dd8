package document

import (
	"time"

	"github.com/google/uuid"
)

// Document is stored metadata for an uploaded client file. The bytes
// live on disk under the configured storage root; only the relative
// path is persisted.
type Document struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID    uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Category    string    `gorm:"not null" json:"category"`
	FileName    string    `gorm:"not null" json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	StoragePath string    `gorm:"not null" json:"-"`
	SegmentID   *int64    `gorm:"index" json:"segment_id"`
	UploadedBy  uuid.UUID `gorm:"type:uuid" json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Document) TableName() string {
	return "documents"
}
