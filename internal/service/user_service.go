package service

import (
	"context"
	"errors"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserResponse is the public shape of any account, password omitted.
type UserResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	ProfileImage string   `json:"profile_image,omitempty"`
	PhoneNumber  string   `json:"phone_number,omitempty"`
	Address      string   `json:"address,omitempty"`
	Permissions  []string `json:"permissions,omitempty"`
	Bookings     []string `json:"bookings,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

// StaffResponse extends UserResponse with the staff profile and the derived
// rating figures recomputed from reviews on every read.
type StaffResponse struct {
	UserResponse
	Skills             []string           `json:"skills"`
	AssignedFacilities []string           `json:"assigned_facilities"`
	Availability       model.Availability `json:"availability"`
	IsAvailable        bool               `json:"is_available"`
	AverageRating      float64            `json:"average_rating"`
	TotalReviews       int64              `json:"total_reviews"`
}

type UserService interface {
	GetUserByID(ctx context.Context, actor Actor, id uuid.UUID) (*UserResponse, error)
	GetMe(ctx context.Context, actor Actor) (*UserResponse, error)
	ListUsers(ctx context.Context, actor Actor) ([]UserResponse, error)
	ListStaff(ctx context.Context) ([]StaffResponse, error)
	GetStaff(ctx context.Context, id uuid.UUID) (*StaffResponse, error)
	SetStaffAvailability(ctx context.Context, actor Actor, staffID uuid.UUID, available bool) (*StaffResponse, error)
}

type userService struct {
	users   repository.UserRepository
	reviews repository.ReviewRepository
}

func NewUserService(users repository.UserRepository, reviews repository.ReviewRepository) UserService {
	return &userService{users: users, reviews: reviews}
}

func mapUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:           user.ID.String(),
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
		PhoneNumber:  user.PhoneNumber,
		Address:      user.Address,
		Permissions:  user.Permissions,
		Bookings:     user.Bookings,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
	}
}

func (s *userService) mapStaffResponse(ctx context.Context, user *model.User) (*StaffResponse, error) {
	agg, err := s.reviews.SummarizeByStaff(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &StaffResponse{
		UserResponse:       mapUserResponse(user),
		Skills:             user.Skills,
		AssignedFacilities: user.AssignedFacilities,
		Availability:       user.Availability.Data(),
		IsAvailable:        user.IsAvailable,
		AverageRating:      agg.Average,
		TotalReviews:       agg.Count,
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, actor Actor, id uuid.UUID) (*UserResponse, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	res := mapUserResponse(user)
	return &res, nil
}

func (s *userService) GetMe(ctx context.Context, actor Actor) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	res := mapUserResponse(user)
	return &res, nil
}

func (s *userService) ListUsers(ctx context.Context, actor Actor) ([]UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, mapUserResponse(&users[i]))
	}
	return responses, nil
}

// ListStaff is the public staff directory shown on facility pages.
func (s *userService) ListStaff(ctx context.Context) ([]StaffResponse, error) {
	staff, err := s.users.ListByRole(ctx, model.RoleStaff)
	if err != nil {
		return nil, err
	}

	responses := make([]StaffResponse, 0, len(staff))
	for i := range staff {
		res, err := s.mapStaffResponse(ctx, &staff[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *res)
	}
	return responses, nil
}

func (s *userService) GetStaff(ctx context.Context, id uuid.UUID) (*StaffResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil || user.Role != model.RoleStaff {
		return nil, ErrNotFound
	}
	return s.mapStaffResponse(ctx, user)
}

// SetStaffAvailability toggles the staff member's booking availability.
// Staff can change their own flag; admins can change anyone's.
func (s *userService) SetStaffAvailability(ctx context.Context, actor Actor, staffID uuid.UUID, available bool) (*StaffResponse, error) {
	if !actor.IsAdmin() && actor.ID != staffID {
		return nil, ErrForbidden
	}

	user, err := s.users.FindByID(ctx, staffID)
	if err != nil || user.Role != model.RoleStaff {
		return nil, ErrNotFound
	}

	user.IsAvailable = available
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.mapStaffResponse(ctx, user)
}
