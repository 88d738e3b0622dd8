package masterdata

import (
	"time"

	"github.com/google/uuid"
)

// MasterData is one service-taxonomy entry: the (category, type, provider)
// triple scoped by an optional segment. The segment id is part of the
// combination's identity; the same triple under two different segments (or
// one scoped, one global) are distinct combinations.
//
// Postgres treats NULLs as distinct in the unique index, so global (nil
// segment) rows are deduplicated only by the application-level existence
// check.
type MasterData struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	ServiceCategory string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_master_data_combination"`
	ServiceType     string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_master_data_combination"`
	ServiceProvider string    `gorm:"type:varchar(150);not null;uniqueIndex:uq_master_data_combination"`
	SegmentID       *int64    `gorm:"uniqueIndex:uq_master_data_combination"`
	Active          bool      `gorm:"not null;default:true"`
	CreatedBy       uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time `gorm:"not null;default:now()"`
	UpdatedAt       time.Time `gorm:"not null;default:now()"`
}

func (MasterData) TableName() string {
	return "master_data"
}

// ReferencingService is the operator-facing summary of a client service that
// still depends on a taxonomy combination.
type ReferencingService struct {
	ClientName       string    `json:"clientName"`
	Status           string    `json:"status"`
	ServiceStartDate time.Time `json:"serviceStartDate"`
}
