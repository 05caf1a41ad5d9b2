package service

import (
	"context"
	"testing"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewChecks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, "Alice", "alice@example.com", model.RoleCustomer)
	stranger := env.createUser(t, "Bob", "bob@example.com", model.RoleCustomer)
	staff := env.createUser(t, "John", "john@example.com", model.RoleStaff)
	facility := env.createFacility(t, "Plumbing", 75)

	pending := env.createBooking(t, customer, staff, facility, model.BookingStatusPending)
	completed := env.createBooking(t, customer, staff, facility, model.BookingStatusCompleted)

	// Unknown booking.
	_, err := env.reviewService.CreateReview(ctx, asActor(customer), CreateReviewRequest{
		BookingID: uuid.NewString(), Rating: 5,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	// Not the booking's customer.
	_, err = env.reviewService.CreateReview(ctx, asActor(stranger), CreateReviewRequest{
		BookingID: completed.ID.String(), Rating: 5,
	})
	assert.ErrorIs(t, err, ErrForbidden)

	// Staff cannot review at all.
	_, err = env.reviewService.CreateReview(ctx, asActor(staff), CreateReviewRequest{
		BookingID: completed.ID.String(), Rating: 5,
	})
	assert.ErrorIs(t, err, ErrForbidden)

	// Booking not completed yet.
	_, err = env.reviewService.CreateReview(ctx, asActor(customer), CreateReviewRequest{
		BookingID: pending.ID.String(), Rating: 5,
	})
	assert.ErrorIs(t, err, ErrBookingNotCompleted)

	// Rating out of range.
	_, err = env.reviewService.CreateReview(ctx, asActor(customer), CreateReviewRequest{
		BookingID: completed.ID.String(), Rating: 6,
	})
	assert.ErrorIs(t, err, ErrInvalidRating)

	// First valid review succeeds, second on the same booking conflicts.
	res, err := env.reviewService.CreateReview(ctx, asActor(customer), CreateReviewRequest{
		BookingID: completed.ID.String(), Rating: 4, Comment: "Good work",
	})
	require.NoError(t, err)
	assert.Equal(t, staff.ID.String(), res.StaffID, "staff reference copied from the booking")
	assert.Equal(t, facility.ID.String(), res.FacilityID)

	_, err = env.reviewService.CreateReview(ctx, asActor(customer), CreateReviewRequest{
		BookingID: completed.ID.String(), Rating: 5,
	})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestRatingSummaryIsDerived(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, "Alice", "alice@example.com", model.RoleCustomer)
	staff := env.createUser(t, "John", "john@example.com", model.RoleStaff)
	facility := env.createFacility(t, "Plumbing", 75)

	// No reviews: the zero sentinel, not an error.
	summary, err := env.reviewService.StaffRatingSummary(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, RatingSummary{Average: 0, Count: 0}, summary)

	b1 := env.createBooking(t, customer, staff, facility, model.BookingStatusCompleted)
	b2 := env.createBooking(t, customer, staff, facility, model.BookingStatusCompleted)

	for _, rc := range []struct {
		booking *model.Booking
		rating  int
	}{
		{b1, 5},
		{b2, 4},
	} {
		_, err := env.reviewService.CreateReview(ctx, asActor(customer), CreateReviewRequest{
			BookingID: rc.booking.ID.String(), Rating: rc.rating,
		})
		require.NoError(t, err)
	}

	summary, err = env.reviewService.StaffRatingSummary(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Count)
	assert.InDelta(t, 4.5, summary.Average, 0.001)

	facilitySummary, err := env.reviewService.FacilityRatingSummary(ctx, facility.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), facilitySummary.Count)
	assert.InDelta(t, 4.5, facilitySummary.Average, 0.001)

	// Deleting a review moves the average immediately.
	reviews, err := env.reviewService.ListStaffReviews(ctx, staff.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	for _, r := range reviews {
		if r.Rating == 4 {
			require.NoError(t, env.reviewService.DeleteReview(ctx, asActor(customer), uuid.MustParse(r.ID)))
		}
	}

	summary, err = env.reviewService.StaffRatingSummary(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Count)
	assert.InDelta(t, 5.0, summary.Average, 0.001)
}

func TestDeleteReviewAuthorOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "Admin", "admin@example.com", model.RoleAdmin)
	customer := env.createUser(t, "Alice", "alice@example.com", model.RoleCustomer)
	stranger := env.createUser(t, "Bob", "bob@example.com", model.RoleCustomer)
	staff := env.createUser(t, "John", "john@example.com", model.RoleStaff)
	facility := env.createFacility(t, "Plumbing", 75)
	booking := env.createBooking(t, customer, staff, facility, model.BookingStatusCompleted)

	res, err := env.reviewService.CreateReview(ctx, asActor(customer), CreateReviewRequest{
		BookingID: booking.ID.String(), Rating: 5,
	})
	require.NoError(t, err)
	id := uuid.MustParse(res.ID)

	assert.ErrorIs(t, env.reviewService.DeleteReview(ctx, asActor(stranger), id), ErrForbidden)
	require.NoError(t, env.reviewService.DeleteReview(ctx, asActor(admin), id))
	assert.ErrorIs(t, env.reviewService.DeleteReview(ctx, asActor(admin), id), ErrNotFound)
}

// TestBookingReviewFlow walks the full lifecycle: book, advance to
// completion, review, and observe the derived rating on the staff profile.
func TestBookingReviewFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, "Alice", "alice@example.com", model.RoleCustomer)
	staff := env.createUser(t, "John", "john@example.com", model.RoleStaff)
	facility := env.createFacility(t, "AC Repair", 95)

	booking, err := env.bookingService.CreateBooking(ctx, asActor(customer), CreateBookingRequest{
		FacilityID: facility.ID.String(),
		StaffID:    staff.ID.String(),
		Date:       time.Now().Add(72 * time.Hour),
		TimeSlot:   "14:00-16:00",
	})
	require.NoError(t, err)
	bookingID := uuid.MustParse(booking.ID)

	// Review before completion is rejected.
	_, err = env.reviewService.CreateReview(ctx, asActor(customer), CreateReviewRequest{
		BookingID: booking.ID, Rating: 5,
	})
	assert.ErrorIs(t, err, ErrBookingNotCompleted)

	staffActor := asActor(staff)
	for _, next := range []model.BookingStatus{
		model.BookingStatusConfirmed,
		model.BookingStatusInProgress,
		model.BookingStatusCompleted,
	} {
		_, err = env.bookingService.UpdateStatus(ctx, staffActor, bookingID, string(next))
		require.NoError(t, err)
	}

	_, err = env.reviewService.CreateReview(ctx, asActor(customer), CreateReviewRequest{
		BookingID: booking.ID, Rating: 5, Comment: "Fixed on the first visit",
	})
	require.NoError(t, err)

	profile, err := env.userService.GetStaff(ctx, staff.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, profile.AverageRating, 0.001)
	assert.Equal(t, int64(1), profile.TotalReviews)
}
