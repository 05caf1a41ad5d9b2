package service

import (
	"context"
	"time"

	"backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StatisticsService interface {
	GetStatistics(ctx context.Context, actor Actor, startDate, endDate time.Time) (model.StatisticsResponse, error)
}

type statisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db}
}

// GetStatistics aggregates bookings and reviews within the time range for
// the admin dashboard. Everything is computed from the base tables on each
// call; nothing is cached.
func (s *statisticsService) GetStatistics(ctx context.Context, actor Actor, startDate, endDate time.Time) (model.StatisticsResponse, error) {
	if !actor.IsAdmin() {
		return model.StatisticsResponse{}, ErrForbidden
	}

	var response model.StatisticsResponse
	response.TimeRangeStartDate = startDate
	response.TimeRangeEndDate = endDate

	err := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Count(&response.TotalBookings).Error
	if err != nil {
		return response, err
	}

	var byStatus []model.StatusCount
	err = s.db.WithContext(ctx).Model(&model.Booking{}).
		Select("status, COUNT(*) as count").
		Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return response, err
	}
	response.BookingsByStatus = byStatus

	var revenue struct {
		Value decimal.Decimal
	}
	err = s.db.WithContext(ctx).Model(&model.Booking{}).
		Select("COALESCE(SUM(total_price), 0) as value").
		Where("status = ? AND created_at >= ? AND created_at <= ?", model.BookingStatusCompleted, startDate, endDate).
		Scan(&revenue).Error
	if err != nil {
		return response, err
	}
	response.CompletedRevenue = revenue.Value

	var topFacilities []model.FacilityRanking
	err = s.db.WithContext(ctx).Table("bookings").
		Select("facilities.id as facility_id, facilities.name as facility_name, COUNT(bookings.id) as booking_count, COALESCE(SUM(bookings.total_price), 0) as total_value").
		Joins("JOIN facilities ON facilities.id = bookings.facility_id").
		Where("bookings.created_at >= ? AND bookings.created_at <= ?", startDate, endDate).
		Group("facilities.id, facilities.name").
		Order("booking_count DESC").
		Limit(5).
		Scan(&topFacilities).Error
	if err != nil {
		return response, err
	}
	response.TopFacilities = topFacilities

	var topStaff []model.StaffRanking
	err = s.db.WithContext(ctx).Table("reviews").
		Select("users.id as staff_id, users.name as staff_name, AVG(reviews.rating) as average_rating, COUNT(reviews.id) as review_count").
		Joins("JOIN users ON users.id = reviews.staff_id").
		Where("reviews.created_at >= ? AND reviews.created_at <= ?", startDate, endDate).
		Group("users.id, users.name").
		Order("average_rating DESC").
		Limit(5).
		Scan(&topStaff).Error
	if err != nil {
		return response, err
	}
	response.TopStaff = topStaff

	return response, nil
}
