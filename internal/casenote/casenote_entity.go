package casenote

import (
	"time"

	"github.com/google/uuid"
)

type CaseNote struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	ClientServiceID *uuid.UUID `gorm:"type:uuid;index" json:"client_service_id"`
	NoteType        string     `json:"note_type"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	SegmentID       *int64     `gorm:"index" json:"segment_id"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (CaseNote) TableName() string {
	return "case_notes"
}
