package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FacilityRepository interface {
	Create(ctx context.Context, facility *model.Facility) error
	Update(ctx context.Context, facility *model.Facility) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Facility, error)
	List(ctx context.Context, category string) ([]model.Facility, error)
}

type facilityRepository struct {
	db *gorm.DB
}

func NewFacilityRepository(db *gorm.DB) FacilityRepository {
	return &facilityRepository{db: db}
}

func (r *facilityRepository) Create(ctx context.Context, facility *model.Facility) error {
	return GetDB(ctx, r.db).Create(facility).Error
}

func (r *facilityRepository) Update(ctx context.Context, facility *model.Facility) error {
	return GetDB(ctx, r.db).Save(facility).Error
}

func (r *facilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Facility{}).Error
}

func (r *facilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Facility, error) {
	var facility model.Facility
	if err := GetDB(ctx, r.db).First(&facility, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &facility, nil
}

func (r *facilityRepository) List(ctx context.Context, category string) ([]model.Facility, error) {
	var facilities []model.Facility

	db := GetDB(ctx, r.db).Model(&model.Facility{})
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if err := db.Order("created_at asc").Find(&facilities).Error; err != nil {
		return nil, err
	}
	return facilities, nil
}
