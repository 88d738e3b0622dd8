package client

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is the care recipient. Rows are scoped by the nullable segment id
// the same way services and documents are.
type Client struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName    string         `gorm:"type:varchar(100);not null"`
	LastName     string         `gorm:"type:varchar(100);not null"`
	DateOfBirth  *time.Time     `gorm:"type:date"`
	Email        string         `gorm:"type:varchar(255)"`
	Phone        string         `gorm:"type:varchar(50)"`
	AddressLine1 string         `gorm:"type:varchar(255)"`
	AddressLine2 string         `gorm:"type:varchar(255)"`
	City         string         `gorm:"type:varchar(100)"`
	State        string         `gorm:"type:varchar(100)"`
	Postcode     string         `gorm:"type:varchar(20)"`
	SegmentID    *int64         `gorm:"index"`
	CreatedBy    uuid.UUID      `gorm:"type:uuid"`
	CreatedAt    time.Time      `gorm:"not null;default:now()"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Client) TableName() string {
	return "clients"
}
