package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreateFacility = "CREATE_FACILITY"
	ActionUpdateFacility = "UPDATE_FACILITY"
	ActionDeleteFacility = "DELETE_FACILITY"

	ActionCreateBooking       = "CREATE_BOOKING"
	ActionBookingStatusChange = "BOOKING_STATUS_CHANGE"
	ActionDeleteBooking       = "DELETE_BOOKING"

	ActionCreateReview = "CREATE_REVIEW"
	ActionDeleteReview = "DELETE_REVIEW"
)

// AuditLog tracks who changed what and when for every mutating operation.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:text" json:"details"` // serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
