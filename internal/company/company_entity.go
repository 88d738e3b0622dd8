package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string         `gorm:"type:varchar(150);not null"`
	Email        string         `gorm:"type:varchar(255);index"`
	Phone        string         `gorm:"type:varchar(50)"`
	AddressLine1 string         `gorm:"type:varchar(255)"`
	AddressLine2 string         `gorm:"type:varchar(255)"`
	City         string         `gorm:"type:varchar(100)"`
	State        string         `gorm:"type:varchar(100)"`
	Postcode     string         `gorm:"type:varchar(20)"`
	IsActive     bool           `gorm:"not null;default:true"`
	CreatedAt    time.Time      `gorm:"not null;default:now()"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}
