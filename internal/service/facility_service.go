package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateFacilityRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	Category      string   `json:"category" binding:"required"`
	AssignedStaff []string `json:"assigned_staff"`
	EstimatedTime string   `json:"estimated_time"`
}

// UpdateFacilityRequest uses pointers so a partial merge can distinguish
// "not sent" from a zero value such as is_available=false.
type UpdateFacilityRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	ImageURL      *string   `json:"image_url"`
	Price         *float64  `json:"price" binding:"omitempty,gt=0"`
	Category      *string   `json:"category"`
	AssignedStaff *[]string `json:"assigned_staff"`
	IsAvailable   *bool     `json:"is_available"`
	EstimatedTime *string   `json:"estimated_time"`
}

type FacilityResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url"`
	Price         float64  `json:"price"`
	Category      string   `json:"category"`
	AssignedStaff []string `json:"assigned_staff"`
	IsAvailable   bool     `json:"is_available"`
	EstimatedTime string   `json:"estimated_time"`
	CreatedAt     string   `json:"created_at"`
}

type FacilityService interface {
	ListFacilities(ctx context.Context, category string) ([]FacilityResponse, error)
	GetFacility(ctx context.Context, id uuid.UUID) (*FacilityResponse, error)
	CreateFacility(ctx context.Context, actor Actor, req CreateFacilityRequest) (*FacilityResponse, error)
	UpdateFacility(ctx context.Context, actor Actor, id uuid.UUID, req UpdateFacilityRequest) (*FacilityResponse, error)
	DeleteFacility(ctx context.Context, actor Actor, id uuid.UUID) error
}

type facilityService struct {
	facilities repository.FacilityRepository
	audit      repository.AuditRepository
	txManager  repository.TransactionManager
}

func NewFacilityService(
	facilities repository.FacilityRepository,
	audit repository.AuditRepository,
	txManager repository.TransactionManager,
) FacilityService {
	return &facilityService{facilities: facilities, audit: audit, txManager: txManager}
}

func mapFacilityResponse(f *model.Facility) FacilityResponse {
	return FacilityResponse{
		ID:            f.ID.String(),
		Name:          f.Name,
		Description:   f.Description,
		ImageURL:      f.ImageURL,
		Price:         f.Price.InexactFloat64(),
		Category:      f.Category,
		AssignedStaff: f.AssignedStaff,
		IsAvailable:   f.IsAvailable,
		EstimatedTime: f.EstimatedTime,
		CreatedAt:     f.CreatedAt.Format(time.RFC3339),
	}
}

func (s *facilityService) ListFacilities(ctx context.Context, category string) ([]FacilityResponse, error) {
	facilities, err := s.facilities.List(ctx, category)
	if err != nil {
		return nil, err
	}

	responses := make([]FacilityResponse, 0, len(facilities))
	for i := range facilities {
		responses = append(responses, mapFacilityResponse(&facilities[i]))
	}
	return responses, nil
}

func (s *facilityService) GetFacility(ctx context.Context, id uuid.UUID) (*FacilityResponse, error) {
	facility, err := s.facilities.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	res := mapFacilityResponse(facility)
	return &res, nil
}

func (s *facilityService) CreateFacility(ctx context.Context, actor Actor, req CreateFacilityRequest) (*FacilityResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	facility := &model.Facility{
		Name:          req.Name,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Price:         decimal.NewFromFloat(req.Price),
		Category:      req.Category,
		AssignedStaff: datatypes.NewJSONSlice(req.AssignedStaff),
		IsAvailable:   true,
		EstimatedTime: req.EstimatedTime,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.facilities.Create(txCtx, facility); err != nil {
			return err
		}
		return s.audit.Log(txCtx, auditEntry(actor, model.ActionCreateFacility, facility.ID.String(), facility.Name, req))
	})
	if err != nil {
		return nil, err
	}

	res := mapFacilityResponse(facility)
	return &res, nil
}

// UpdateFacility merges the sent fields into the record. Existing bookings
// keep their price snapshot regardless of price edits here.
func (s *facilityService) UpdateFacility(ctx context.Context, actor Actor, id uuid.UUID, req UpdateFacilityRequest) (*FacilityResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	facility, err := s.facilities.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		facility.Name = *req.Name
	}
	if req.Description != nil {
		facility.Description = *req.Description
	}
	if req.ImageURL != nil {
		facility.ImageURL = *req.ImageURL
	}
	if req.Price != nil {
		facility.Price = decimal.NewFromFloat(*req.Price)
	}
	if req.Category != nil {
		facility.Category = *req.Category
	}
	if req.AssignedStaff != nil {
		facility.AssignedStaff = datatypes.NewJSONSlice(*req.AssignedStaff)
	}
	if req.IsAvailable != nil {
		facility.IsAvailable = *req.IsAvailable
	}
	if req.EstimatedTime != nil {
		facility.EstimatedTime = *req.EstimatedTime
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.facilities.Update(txCtx, facility); err != nil {
			return err
		}
		return s.audit.Log(txCtx, auditEntry(actor, model.ActionUpdateFacility, facility.ID.String(), facility.Name, req))
	})
	if err != nil {
		return nil, err
	}

	res := mapFacilityResponse(facility)
	return &res, nil
}

// DeleteFacility removes the record. Bookings referencing it are left
// untouched; their facility name resolves to "Unknown" from then on.
func (s *facilityService) DeleteFacility(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	facility, err := s.facilities.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.facilities.Delete(txCtx, id); err != nil {
			return err
		}
		return s.audit.Log(txCtx, auditEntry(actor, model.ActionDeleteFacility, id.String(), facility.Name, nil))
	})
}

// auditEntry builds a log row for the acting user, serializing the payload
// best-effort.
func auditEntry(actor Actor, action, entityID, entityName string, payload any) *model.AuditLog {
	details := ""
	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			details = string(raw)
		}
	}
	actorID := actor.ID
	return &model.AuditLog{
		UserID:     &actorID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    details,
	}
}
