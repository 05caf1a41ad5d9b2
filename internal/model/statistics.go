package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusCount is the number of bookings currently in one status.
type StatusCount struct {
	Status BookingStatus `json:"status"`
	Count  int64         `json:"count"`
}

// FacilityRanking ranks facilities by demand within a time range.
type FacilityRanking struct {
	FacilityID   string          `json:"facility_id"`
	FacilityName string          `json:"facility_name"`
	BookingCount int64           `json:"booking_count"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// StaffRanking ranks staff members by their review averages.
type StaffRanking struct {
	StaffID       string  `json:"staff_id"`
	StaffName     string  `json:"staff_name"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// StatisticsResponse backs the admin dashboard.
type StatisticsResponse struct {
	TimeRangeStartDate time.Time         `json:"time_range_start_date"`
	TimeRangeEndDate   time.Time         `json:"time_range_end_date"`
	TotalBookings      int64             `json:"total_bookings"`
	BookingsByStatus   []StatusCount     `json:"bookings_by_status"`
	CompletedRevenue   decimal.Decimal   `json:"completed_revenue"`
	TopFacilities      []FacilityRanking `json:"top_facilities"`
	TopStaff           []StaffRanking    `json:"top_staff"`
}
