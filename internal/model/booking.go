package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// statusTransitions lists the allowed forward moves per status. Terminal
// states map to nil: nothing leaves completed or cancelled, and an
// in-progress job cannot be cancelled anymore.
var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted},
	BookingStatusCompleted:  nil,
	BookingStatusCancelled:  nil,
}

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// Terminal reports whether no further transitions are possible from s.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal step of
// the booking lifecycle.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking links a customer, a facility and a staff member for a time slot.
// The reference columns carry no foreign key constraints: a facility may be
// deleted while bookings pointing at it survive, and display layers resolve
// the gap to "Unknown".
type Booking struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	FacilityID uuid.UUID       `gorm:"type:uuid;not null;index" json:"facility_id"`
	StaffID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"staff_id"`
	Date       time.Time       `gorm:"not null" json:"date"`
	TimeSlot   string          `gorm:"type:varchar(50);not null" json:"time_slot"`
	Status     BookingStatus   `gorm:"type:varchar(32);not null;index" json:"status"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"` // facility price at creation, frozen
	Notes      string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *Booking) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
