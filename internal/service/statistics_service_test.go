package service

import (
	"context"
	"testing"
	"time"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatisticsIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	svc := NewStatisticsService(env.db)

	customer := env.createUser(t, "Alice", "alice@example.com", model.RoleCustomer)
	_, err := svc.GetStatistics(context.Background(), asActor(customer), time.Now().AddDate(0, 0, -30), time.Now())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetStatisticsAggregates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewStatisticsService(env.db)

	admin := env.createUser(t, "Admin", "admin@example.com", model.RoleAdmin)
	customer := env.createUser(t, "Alice", "alice@example.com", model.RoleCustomer)
	staff := env.createUser(t, "John", "john@example.com", model.RoleStaff)
	plumbing := env.createFacility(t, "Plumbing", 75)
	cleaning := env.createFacility(t, "Cleaning", 120)

	completed1 := env.createBooking(t, customer, staff, plumbing, model.BookingStatusCompleted)
	completed2 := env.createBooking(t, customer, staff, cleaning, model.BookingStatusCompleted)
	env.createBooking(t, customer, staff, plumbing, model.BookingStatusPending)

	for _, b := range []*model.Booking{completed1, completed2} {
		_, err := env.reviewService.CreateReview(ctx, asActor(customer), CreateReviewRequest{
			BookingID: b.ID.String(), Rating: 4,
		})
		require.NoError(t, err)
	}

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)
	stats, err := svc.GetStatistics(ctx, asActor(admin), start, end)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalBookings)
	assert.InDelta(t, 195.0, stats.CompletedRevenue.InexactFloat64(), 0.001, "pending bookings do not count as revenue")

	byStatus := make(map[string]int64, len(stats.BookingsByStatus))
	for _, sc := range stats.BookingsByStatus {
		byStatus[string(sc.Status)] = sc.Count
	}
	assert.Equal(t, int64(2), byStatus[string(model.BookingStatusCompleted)])
	assert.Equal(t, int64(1), byStatus[string(model.BookingStatusPending)])

	require.NotEmpty(t, stats.TopFacilities)
	assert.Equal(t, "Plumbing", stats.TopFacilities[0].FacilityName, "two bookings beats one")

	require.Len(t, stats.TopStaff, 1)
	assert.Equal(t, staff.ID.String(), stats.TopStaff[0].StaffID)
	assert.InDelta(t, 4.0, stats.TopStaff[0].AverageRating, 0.001)
	assert.Equal(t, int64(2), stats.TopStaff[0].ReviewCount)
}

func TestGetStatisticsRespectsTimeRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewStatisticsService(env.db)

	admin := env.createUser(t, "Admin", "admin@example.com", model.RoleAdmin)
	customer := env.createUser(t, "Alice", "alice@example.com", model.RoleCustomer)
	staff := env.createUser(t, "John", "john@example.com", model.RoleStaff)
	facility := env.createFacility(t, "Plumbing", 75)
	env.createBooking(t, customer, staff, facility, model.BookingStatusCompleted)

	// A window strictly in the past sees nothing.
	stats, err := svc.GetStatistics(ctx, asActor(admin), time.Now().AddDate(0, -2, 0), time.Now().AddDate(0, -1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalBookings)
	assert.True(t, stats.CompletedRevenue.IsZero())
	assert.Empty(t, stats.TopFacilities)
}
