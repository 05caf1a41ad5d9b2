package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User roles. Role decides which of the profile columns below are meaningful.
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// HourRange is a daily working window in "HH:MM" notation.
type HourRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Availability describes when a staff member accepts bookings.
type Availability struct {
	Days  []string  `json:"days"`
	Hours HourRange `json:"hours"`
}

// User is the single account table for admins, staff and customers.
// Role-specific fields live in JSON columns so the same schema works on
// sqlite and postgres without subtype tables.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, never serialized
	Role         string    `gorm:"type:varchar(50);not null;index" json:"role"`
	ProfileImage string    `gorm:"type:text" json:"profile_image,omitempty"`
	PhoneNumber  string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Address      string    `gorm:"type:varchar(255)" json:"address,omitempty"`

	// Staff profile. AverageRating and TotalReviews are intentionally absent:
	// both are derived from the reviews table at read time.
	Skills             datatypes.JSONSlice[string]      `json:"skills,omitempty"`
	AssignedFacilities datatypes.JSONSlice[string]      `json:"assigned_facilities,omitempty"`
	Availability       datatypes.JSONType[Availability] `json:"availability,omitempty"`
	IsAvailable        bool                             `gorm:"default:true" json:"is_available"`

	// Admin profile.
	Permissions datatypes.JSONSlice[string] `json:"permissions,omitempty"`

	// Customer profile: mirror of booking ids, appended on booking create.
	Bookings datatypes.JSONSlice[string] `json:"bookings,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns an id app-side so uuid generation does not depend on
// database defaults (sqlite has none).
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff || role == RoleCustomer
}

// RefreshToken stores long-lived tokens allowing users to request new access tokens.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (t *RefreshToken) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
