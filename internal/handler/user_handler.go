package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Staff directory is public: facility pages show it pre-login.
	staff := router.Group("/api/staff")
	{
		staff.GET("", h.ListStaff)
		staff.GET("/:id", h.GetStaff)
		staff.PATCH("/:id/availability", middleware.RequireRole(model.RoleAdmin, model.RoleStaff), h.SetAvailability)
	}

	users := router.Group("/api/users")
	{
		users.GET("", middleware.RequireRole(model.RoleAdmin), h.ListUsers)
		users.GET("/:id", middleware.RequireAuth(), h.GetUserByID)
	}
}

// ListStaff returns the public staff directory
// @Summary      List staff
// @Description  Staff directory with ratings derived from reviews
// @Tags         staff
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.StaffResponse}
// @Router       /api/staff [get]
func (h *UserHandler) ListStaff(c *gin.Context) {
	staff, err := h.userService.ListStaff(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, staff))
}

// GetStaff returns one staff member
// @Summary      Get staff member
// @Tags         staff
// @Produce      json
// @Param        id   path      string  true  "Staff ID"
// @Success      200  {object}  response.Response{data=service.StaffResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/staff/{id} [get]
func (h *UserHandler) GetStaff(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	staff, err := h.userService.GetStaff(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, staff))
}

type setAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// SetAvailability toggles a staff member's booking availability
// @Summary      Set staff availability
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                  true  "Staff ID"
// @Param        payload  body      setAvailabilityRequest  true  "Availability"
// @Success      200      {object}  response.Response{data=service.StaffResponse}
// @Failure      403      {object}  response.Response
// @Router       /api/staff/{id}/availability [patch]
func (h *UserHandler) SetAvailability(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req setAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	staff, err := h.userService.SetStaffAvailability(c.Request.Context(), actor, id, *req.IsAvailable)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, staff))
}

// ListUsers returns every account
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.UserResponse}
// @Router       /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, users))
}

// GetUserByID fetches a single account, self or admin
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=service.UserResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}
