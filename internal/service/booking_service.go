package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	ws "backend/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateBookingRequest struct {
	// CustomerID is honored for admins booking on a customer's behalf and
	// ignored for everyone else.
	CustomerID string    `json:"customer_id"`
	FacilityID string    `json:"facility_id" binding:"required,uuid"`
	StaffID    string    `json:"staff_id" binding:"required,uuid"`
	Date       time.Time `json:"date" binding:"required"`
	TimeSlot   string    `json:"time_slot" binding:"required"`
	Notes      string    `json:"notes"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BookingQuery narrows a booking listing. Scope selects the derived views:
// "upcoming" excludes terminal statuses, "past" selects them.
type BookingQuery struct {
	Scope      string
	CustomerID string
	StaffID    string
}

// BookingResponse resolves the referenced names for display. Dangling
// references render as "Unknown" instead of failing.
type BookingResponse struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	FacilityID   string    `json:"facility_id"`
	FacilityName string    `json:"facility_name"`
	StaffID      string    `json:"staff_id"`
	StaffName    string    `json:"staff_name"`
	Date         time.Time `json:"date"`
	TimeSlot     string    `json:"time_slot"`
	Status       string    `json:"status"`
	TotalPrice   float64   `json:"total_price"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    string    `json:"created_at"`
}

// BookingEvent is the websocket payload pushed to dashboards on lifecycle
// changes.
type BookingEvent struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

const unknownName = "Unknown"

type BookingService interface {
	CreateBooking(ctx context.Context, actor Actor, req CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, actor Actor, id uuid.UUID) (*BookingResponse, error)
	ListBookings(ctx context.Context, actor Actor, query BookingQuery) ([]BookingResponse, error)
	UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (*BookingResponse, error)
	CancelBooking(ctx context.Context, actor Actor, id uuid.UUID) (*BookingResponse, error)
	DeleteBooking(ctx context.Context, actor Actor, id uuid.UUID) error
}

type bookingService struct {
	bookings   repository.BookingRepository
	facilities repository.FacilityRepository
	users      repository.UserRepository
	audit      repository.AuditRepository
	txManager  repository.TransactionManager
	hub        *ws.Hub
}

func NewBookingService(
	bookings repository.BookingRepository,
	facilities repository.FacilityRepository,
	users repository.UserRepository,
	audit repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) BookingService {
	return &bookingService{
		bookings:   bookings,
		facilities: facilities,
		users:      users,
		audit:      audit,
		txManager:  txManager,
		hub:        hub,
	}
}

// CreateBooking opens a new booking in pending state, snapshotting the
// facility's current price into TotalPrice. The customer's booking-id mirror
// is appended in the same transaction.
func (s *bookingService) CreateBooking(ctx context.Context, actor Actor, req CreateBookingRequest) (*BookingResponse, error) {
	var customerID uuid.UUID
	switch {
	case actor.IsCustomer():
		customerID = actor.ID
	case actor.IsAdmin():
		parsed, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("%w: customer_id is required when booking on a customer's behalf", ErrValidation)
		}
		customerID = parsed
	default:
		return nil, ErrForbidden
	}

	facilityID, err := uuid.Parse(req.FacilityID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid facility_id", ErrValidation)
	}
	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid staff_id", ErrValidation)
	}

	facility, err := s.facilities.FindByID(ctx, facilityID)
	if err != nil {
		return nil, ErrNotFound
	}

	staff, err := s.users.FindByID(ctx, staffID)
	if err != nil || staff.Role != model.RoleStaff {
		return nil, ErrNotFound
	}

	customer, err := s.users.FindByID(ctx, customerID)
	if err != nil || customer.Role != model.RoleCustomer {
		return nil, ErrNotFound
	}

	booking := &model.Booking{
		CustomerID: customerID,
		FacilityID: facilityID,
		StaffID:    staffID,
		Date:       req.Date,
		TimeSlot:   req.TimeSlot,
		Status:     model.BookingStatusPending,
		TotalPrice: facility.Price,
		Notes:      req.Notes,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.bookings.Create(txCtx, booking); err != nil {
			return err
		}

		customer.Bookings = append(customer.Bookings, booking.ID.String())
		if err := s.users.Update(txCtx, customer); err != nil {
			return err
		}

		return s.audit.Log(txCtx, auditEntry(actor, model.ActionCreateBooking, booking.ID.String(), facility.Name, req))
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("booking.created", booking)

	res := s.mapBooking(ctx, booking)
	return &res, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor Actor, id uuid.UUID) (*BookingResponse, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !actor.IsAdmin() && booking.CustomerID != actor.ID && booking.StaffID != actor.ID {
		return nil, ErrForbidden
	}

	res := s.mapBooking(ctx, booking)
	return &res, nil
}

// ListBookings applies role scoping first: customers see their own bookings,
// staff their assignments, admins everything (optionally narrowed by
// customer_id / staff_id).
func (s *bookingService) ListBookings(ctx context.Context, actor Actor, query BookingQuery) ([]BookingResponse, error) {
	filter := repository.BookingFilter{}

	switch {
	case actor.IsCustomer():
		id := actor.ID
		filter.CustomerID = &id
	case actor.IsStaff():
		id := actor.ID
		filter.StaffID = &id
	default:
		if query.CustomerID != "" {
			id, err := uuid.Parse(query.CustomerID)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid customer_id", ErrValidation)
			}
			filter.CustomerID = &id
		}
		if query.StaffID != "" {
			id, err := uuid.Parse(query.StaffID)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid staff_id", ErrValidation)
			}
			filter.StaffID = &id
		}
	}

	terminal := []model.BookingStatus{model.BookingStatusCompleted, model.BookingStatusCancelled}
	switch query.Scope {
	case "upcoming":
		filter.ExcludeStatuses = terminal
	case "past":
		filter.Statuses = terminal
	case "":
	default:
		return nil, fmt.Errorf("%w: invalid scope, must be upcoming or past", ErrValidation)
	}

	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resolver, err := s.newNameResolver(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, resolver.resolve(&bookings[i]))
	}
	return responses, nil
}

// UpdateStatus is the single mutation point of the booking lifecycle. The
// transition table and the actor's capability are both enforced here, never
// in the transport layer.
func (s *bookingService) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (*BookingResponse, error) {
	next := model.BookingStatus(status)
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.authorizeTransition(actor, booking, next); err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	previous := booking.Status
	booking.Status = next

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.bookings.Update(txCtx, booking); err != nil {
			return err
		}
		detail := map[string]string{"from": string(previous), "to": string(next)}
		return s.audit.Log(txCtx, auditEntry(actor, model.ActionBookingStatusChange, booking.ID.String(), "", detail))
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("booking.status_changed", booking)

	res := s.mapBooking(ctx, booking)
	return &res, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, actor Actor, id uuid.UUID) (*BookingResponse, error) {
	return s.UpdateStatus(ctx, actor, id, string(model.BookingStatusCancelled))
}

func (s *bookingService) DeleteBooking(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	if _, err := s.bookings.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.bookings.Delete(txCtx, id); err != nil {
			return err
		}
		return s.audit.Log(txCtx, auditEntry(actor, model.ActionDeleteBooking, id.String(), "", nil))
	})
}

// authorizeTransition checks who may request which move: customers cancel
// their own bookings, staff advance their own assignments, admins do any
// legal move.
func (s *bookingService) authorizeTransition(actor Actor, booking *model.Booking, next model.BookingStatus) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.IsCustomer():
		if booking.CustomerID != actor.ID || next != model.BookingStatusCancelled {
			return ErrForbidden
		}
		return nil
	case actor.IsStaff():
		if booking.StaffID != actor.ID || next == model.BookingStatusCancelled {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}

func (s *bookingService) broadcast(event string, booking *model.Booking) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(BookingEvent{
		Event: event,
		Data: map[string]any{
			"id":          booking.ID.String(),
			"customer_id": booking.CustomerID.String(),
			"staff_id":    booking.StaffID.String(),
			"status":      string(booking.Status),
		},
	})
	if err != nil {
		return
	}
	s.hub.Broadcast <- payload
}

// nameResolver maps reference ids to display names from a one-shot snapshot
// of the facilities and users tables. Full scans are fine at this scale.
type nameResolver struct {
	facilityNames map[uuid.UUID]string
	userNames     map[uuid.UUID]string
}

func (s *bookingService) newNameResolver(ctx context.Context) (*nameResolver, error) {
	facilities, err := s.facilities.List(ctx, "")
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	r := &nameResolver{
		facilityNames: make(map[uuid.UUID]string, len(facilities)),
		userNames:     make(map[uuid.UUID]string, len(users)),
	}
	for i := range facilities {
		r.facilityNames[facilities[i].ID] = facilities[i].Name
	}
	for i := range users {
		r.userNames[users[i].ID] = users[i].Name
	}
	return r, nil
}

func (r *nameResolver) resolve(b *model.Booking) BookingResponse {
	facilityName, ok := r.facilityNames[b.FacilityID]
	if !ok {
		facilityName = unknownName
	}
	staffName, ok := r.userNames[b.StaffID]
	if !ok {
		staffName = unknownName
	}
	customerName, ok := r.userNames[b.CustomerID]
	if !ok {
		customerName = unknownName
	}
	return buildBookingResponse(b, customerName, facilityName, staffName)
}

// mapBooking resolves names for a single booking via point lookups.
func (s *bookingService) mapBooking(ctx context.Context, b *model.Booking) BookingResponse {
	facilityName := unknownName
	if facility, err := s.facilities.FindByID(ctx, b.FacilityID); err == nil {
		facilityName = facility.Name
	}
	staffName := unknownName
	if staff, err := s.users.FindByID(ctx, b.StaffID); err == nil {
		staffName = staff.Name
	}
	customerName := unknownName
	if customer, err := s.users.FindByID(ctx, b.CustomerID); err == nil {
		customerName = customer.Name
	}
	return buildBookingResponse(b, customerName, facilityName, staffName)
}

func buildBookingResponse(b *model.Booking, customerName, facilityName, staffName string) BookingResponse {
	return BookingResponse{
		ID:           b.ID.String(),
		CustomerID:   b.CustomerID.String(),
		CustomerName: customerName,
		FacilityID:   b.FacilityID.String(),
		FacilityName: facilityName,
		StaffID:      b.StaffID.String(),
		StaffName:    staffName,
		Date:         b.Date,
		TimeSlot:     b.TimeSlot,
		Status:       string(b.Status),
		TotalPrice:   b.TotalPrice.InexactFloat64(),
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
	}
}
