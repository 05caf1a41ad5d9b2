package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RatingAggregate is the computed review summary for a staff member or
// facility. Nothing is stored: averages are recomputed per read.
type RatingAggregate struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*model.Review, error)
	ListByStaff(ctx context.Context, staffID uuid.UUID) ([]model.Review, error)
	ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]model.Review, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Review, error)
	SummarizeByStaff(ctx context.Context, staffID uuid.UUID) (RatingAggregate, error)
	SummarizeByFacility(ctx context.Context, facilityID uuid.UUID) (RatingAggregate, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return GetDB(ctx, r.db).Create(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Review{}).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := GetDB(ctx, r.db).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := GetDB(ctx, r.db).First(&review, "booking_id = ?", bookingID).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]model.Review, error) {
	return r.listBy(ctx, "staff_id = ?", staffID)
}

func (r *reviewRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]model.Review, error) {
	return r.listBy(ctx, "facility_id = ?", facilityID)
}

func (r *reviewRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Review, error) {
	return r.listBy(ctx, "customer_id = ?", customerID)
}

func (r *reviewRepository) listBy(ctx context.Context, cond string, id uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	if err := GetDB(ctx, r.db).Where(cond, id).Order("created_at desc").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) SummarizeByStaff(ctx context.Context, staffID uuid.UUID) (RatingAggregate, error) {
	return r.summarize(ctx, "staff_id = ?", staffID)
}

func (r *reviewRepository) SummarizeByFacility(ctx context.Context, facilityID uuid.UUID) (RatingAggregate, error) {
	return r.summarize(ctx, "facility_id = ?", facilityID)
}

// summarize computes the average in SQL. COALESCE keeps the zero-review case
// at average 0 rather than NULL.
func (r *reviewRepository) summarize(ctx context.Context, cond string, id uuid.UUID) (RatingAggregate, error) {
	var agg RatingAggregate
	err := GetDB(ctx, r.db).Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as count").
		Where(cond, id).
		Scan(&agg).Error
	if err != nil {
		return RatingAggregate{}, err
	}
	return agg, nil
}
