package model

import (
	"time"

	"gorm.io/gorm"
)

type Driver struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Phone         string         `gorm:"not null" json:"phone"`
	VehicleNumber string         `gorm:"type:varchar(30)" json:"vehicle_number"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Orders []Order `gorm:"foreignKey:DriverID" json:"-"`
}

func (Driver) TableName() string {
	return "drivers"
}
