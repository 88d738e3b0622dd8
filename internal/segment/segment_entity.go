package segment

import (
	"time"

	"github.com/google/uuid"
)

// Segment is the sub-tenant unit below Company and the primary authorization
// scoping boundary. CompanyID never changes after creation; segment
// reassignment is not supported.
type Segment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(150);not null"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Segment) TableName() string {
	return "segments"
}
