package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Facility is a bookable service offering (plumbing, cleaning, AC repair, ...).
type Facility struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string                      `gorm:"type:varchar(255);not null" json:"name"`
	Description   string                      `gorm:"type:text" json:"description"`
	ImageURL      string                      `gorm:"type:text" json:"image_url"`
	Price         decimal.Decimal             `gorm:"type:decimal(10,2);not null" json:"price"`
	Category      string                      `gorm:"type:varchar(100);index" json:"category"`
	AssignedStaff datatypes.JSONSlice[string] `json:"assigned_staff"`
	IsAvailable   bool                        `gorm:"default:true" json:"is_available"`
	EstimatedTime string                      `gorm:"type:varchar(50)" json:"estimated_time"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (f *Facility) BeforeCreate(_ *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
