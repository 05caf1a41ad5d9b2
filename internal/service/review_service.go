package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type ReviewResponse struct {
	ID         string `json:"id"`
	BookingID  string `json:"booking_id"`
	CustomerID string `json:"customer_id"`
	StaffID    string `json:"staff_id"`
	FacilityID string `json:"facility_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	CreatedAt  string `json:"created_at"`
}

// RatingSummary is the "no stored aggregate" review summary: average 0 with
// count 0 is the no-ratings sentinel.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type ReviewService interface {
	CreateReview(ctx context.Context, actor Actor, req CreateReviewRequest) (*ReviewResponse, error)
	DeleteReview(ctx context.Context, actor Actor, id uuid.UUID) error
	ListStaffReviews(ctx context.Context, staffID uuid.UUID) ([]ReviewResponse, error)
	ListFacilityReviews(ctx context.Context, facilityID uuid.UUID) ([]ReviewResponse, error)
	ListCustomerReviews(ctx context.Context, actor Actor, customerID uuid.UUID) ([]ReviewResponse, error)
	StaffRatingSummary(ctx context.Context, staffID uuid.UUID) (RatingSummary, error)
	FacilityRatingSummary(ctx context.Context, facilityID uuid.UUID) (RatingSummary, error)
}

type reviewService struct {
	reviews   repository.ReviewRepository
	bookings  repository.BookingRepository
	audit     repository.AuditRepository
	txManager repository.TransactionManager
}

func NewReviewService(
	reviews repository.ReviewRepository,
	bookings repository.BookingRepository,
	audit repository.AuditRepository,
	txManager repository.TransactionManager,
) ReviewService {
	return &reviewService{reviews: reviews, bookings: bookings, audit: audit, txManager: txManager}
}

func mapReviewResponse(r *model.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID.String(),
		BookingID:  r.BookingID.String(),
		CustomerID: r.CustomerID.String(),
		StaffID:    r.StaffID.String(),
		FacilityID: r.FacilityID.String(),
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}

// CreateReview requires the booking to exist, belong to the reviewing
// customer and be completed, with at most one review per booking. The staff
// and facility references are copied from the booking, never trusted from
// the client.
func (s *reviewService) CreateReview(ctx context.Context, actor Actor, req CreateReviewRequest) (*ReviewResponse, error) {
	if !actor.IsCustomer() {
		return nil, ErrForbidden
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking_id", ErrValidation)
	}

	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if booking.CustomerID != actor.ID {
		return nil, ErrForbidden
	}
	if booking.Status != model.BookingStatusCompleted {
		return nil, ErrBookingNotCompleted
	}
	if _, err := s.reviews.FindByBookingID(ctx, bookingID); err == nil {
		return nil, ErrAlreadyReviewed
	}

	review := &model.Review{
		BookingID:  booking.ID,
		CustomerID: booking.CustomerID,
		StaffID:    booking.StaffID,
		FacilityID: booking.FacilityID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.reviews.Create(txCtx, review); err != nil {
			return err
		}
		return s.audit.Log(txCtx, auditEntry(actor, model.ActionCreateReview, review.ID.String(), "", req))
	})
	if err != nil {
		return nil, err
	}

	res := mapReviewResponse(review)
	return &res, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, actor Actor, id uuid.UUID) error {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !actor.IsAdmin() && review.CustomerID != actor.ID {
		return ErrForbidden
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.reviews.Delete(txCtx, id); err != nil {
			return err
		}
		return s.audit.Log(txCtx, auditEntry(actor, model.ActionDeleteReview, id.String(), "", nil))
	})
}

func (s *reviewService) ListStaffReviews(ctx context.Context, staffID uuid.UUID) ([]ReviewResponse, error) {
	reviews, err := s.reviews.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	return mapReviewResponses(reviews), nil
}

func (s *reviewService) ListFacilityReviews(ctx context.Context, facilityID uuid.UUID) ([]ReviewResponse, error) {
	reviews, err := s.reviews.ListByFacility(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	return mapReviewResponses(reviews), nil
}

func (s *reviewService) ListCustomerReviews(ctx context.Context, actor Actor, customerID uuid.UUID) ([]ReviewResponse, error) {
	if !actor.IsAdmin() && actor.ID != customerID {
		return nil, ErrForbidden
	}
	reviews, err := s.reviews.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return mapReviewResponses(reviews), nil
}

func (s *reviewService) StaffRatingSummary(ctx context.Context, staffID uuid.UUID) (RatingSummary, error) {
	agg, err := s.reviews.SummarizeByStaff(ctx, staffID)
	if err != nil {
		return RatingSummary{}, err
	}
	return RatingSummary{Average: agg.Average, Count: agg.Count}, nil
}

func (s *reviewService) FacilityRatingSummary(ctx context.Context, facilityID uuid.UUID) (RatingSummary, error) {
	agg, err := s.reviews.SummarizeByFacility(ctx, facilityID)
	if err != nil {
		return RatingSummary{}, err
	}
	return RatingSummary{Average: agg.Average, Count: agg.Count}, nil
}

func mapReviewResponses(reviews []model.Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, mapReviewResponse(&reviews[i]))
	}
	return responses
}
