package clientservice

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPlanned    = "Planned"
	StatusInProgress = "In Progress"
	StatusClosed     = "Closed"
)

// ClientService is a service assignment for a client. The
// (category, type, provider) triple must exist in master data before a
// row is created; master data rows referenced here cannot be repointed.
type ClientService struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID         uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	ServiceCategory  string    `gorm:"not null" json:"service_category"`
	ServiceType      string    `gorm:"not null" json:"service_type"`
	ServiceProvider  string    `gorm:"not null" json:"service_provider"`
	ServiceStartDate time.Time `gorm:"type:date;not null" json:"service_start_date"`
	ServiceDays      []string  `gorm:"serializer:json" json:"service_days"`
	ServiceHours     int       `gorm:"not null" json:"service_hours"`
	Status           string    `gorm:"not null;default:'Planned'" json:"status"`
	SegmentID        *int64    `gorm:"index" json:"segment_id"`
	CreatedBy        uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (ClientService) TableName() string {
	return "client_services"
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusClosed:
		return true
	}
	return false
}
