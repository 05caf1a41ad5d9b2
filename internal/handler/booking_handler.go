package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) RegisterRoutes(router *gin.RouterGroup) {
	bookings := router.Group("/api/bookings", middleware.RequireAuth())
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id/status", h.UpdateStatus)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.DELETE("/:id", h.DeleteBooking)
	}
}

// CreateBooking opens a new booking
// @Summary      Create booking
// @Description  Books a facility with a staff member, snapshotting the current price
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateBookingRequest  true  "Booking"
// @Success      201      {object}  response.Response{data=service.BookingResponse}
// @Failure      404      {object}  response.Response
// @Router       /api/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, booking))
}

// ListBookings returns bookings visible to the caller
// @Summary      List bookings
// @Description  Customers see their own, staff their assignments, admins everything. scope=upcoming|past filters by lifecycle.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        scope        query     string  false  "upcoming or past"
// @Param        customer_id  query     string  false  "Filter by customer (admin)"
// @Param        staff_id     query     string  false  "Filter by staff (admin)"
// @Success      200          {object}  response.Response{data=[]service.BookingResponse}
// @Router       /api/bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	query := service.BookingQuery{
		Scope:      c.Query("scope"),
		CustomerID: c.Query("customer_id"),
		StaffID:    c.Query("staff_id"),
	}

	bookings, err := h.bookingService.ListBookings(c.Request.Context(), actor, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, bookings))
}

// GetBooking returns one booking
// @Summary      Get booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  response.Response{data=service.BookingResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, booking))
}

// UpdateStatus moves a booking through its lifecycle
// @Summary      Update booking status
// @Description  Transitions are validated server-side; illegal moves return 422
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                              true  "Booking ID"
// @Param        payload  body      service.UpdateBookingStatusRequest  true  "Target status"
// @Success      200      {object}  response.Response{data=service.BookingResponse}
// @Failure      422      {object}  response.Response
// @Router       /api/bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, booking))
}

// CancelBooking cancels a booking
// @Summary      Cancel booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  response.Response{data=service.BookingResponse}
// @Failure      422  {object}  response.Response
// @Router       /api/bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.CancelBooking(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, booking))
}

// DeleteBooking removes a booking record entirely
// @Summary      Delete booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.bookingService.DeleteBooking(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": id}))
}
