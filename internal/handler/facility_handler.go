package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type FacilityHandler struct {
	facilityService service.FacilityService
	reviewService   service.ReviewService
}

func NewFacilityHandler(facilityService service.FacilityService, reviewService service.ReviewService) *FacilityHandler {
	return &FacilityHandler{facilityService: facilityService, reviewService: reviewService}
}

func (h *FacilityHandler) RegisterRoutes(router *gin.RouterGroup) {
	facilities := router.Group("/api/facilities")
	{
		facilities.GET("", h.ListFacilities)
		facilities.GET("/:id", h.GetFacility)
		facilities.GET("/:id/reviews", h.ListFacilityReviews)
		facilities.GET("/:id/rating", h.GetFacilityRating)
		facilities.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateFacility)
		facilities.PUT("/:id", middleware.RequireRole(model.RoleAdmin), h.UpdateFacility)
		facilities.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteFacility)
	}
}

// ListFacilities returns the service catalog
// @Summary      List facilities
// @Description  Optionally filtered by category
// @Tags         facilities
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Success      200       {object}  response.Response{data=[]service.FacilityResponse}
// @Router       /api/facilities [get]
func (h *FacilityHandler) ListFacilities(c *gin.Context) {
	facilities, err := h.facilityService.ListFacilities(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, facilities))
}

// GetFacility returns one facility
// @Summary      Get facility
// @Tags         facilities
// @Produce      json
// @Param        id   path      string  true  "Facility ID"
// @Success      200  {object}  response.Response{data=service.FacilityResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/facilities/{id} [get]
func (h *FacilityHandler) GetFacility(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	facility, err := h.facilityService.GetFacility(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, facility))
}

// ListFacilityReviews returns reviews left on a facility
// @Summary      List facility reviews
// @Tags         facilities
// @Produce      json
// @Param        id   path      string  true  "Facility ID"
// @Success      200  {object}  response.Response{data=[]service.ReviewResponse}
// @Router       /api/facilities/{id}/reviews [get]
func (h *FacilityHandler) ListFacilityReviews(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListFacilityReviews(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, reviews))
}

// GetFacilityRating returns the derived average rating and review count
// @Summary      Facility rating summary
// @Tags         facilities
// @Produce      json
// @Param        id   path      string  true  "Facility ID"
// @Success      200  {object}  response.Response{data=service.RatingSummary}
// @Router       /api/facilities/{id}/rating [get]
func (h *FacilityHandler) GetFacilityRating(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.reviewService.FacilityRatingSummary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// CreateFacility adds a facility to the catalog
// @Summary      Create facility
// @Tags         facilities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateFacilityRequest  true  "Facility"
// @Success      201      {object}  response.Response{data=service.FacilityResponse}
// @Failure      403      {object}  response.Response
// @Router       /api/facilities [post]
func (h *FacilityHandler) CreateFacility(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req service.CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	facility, err := h.facilityService.CreateFacility(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, facility))
}

// UpdateFacility applies a partial update to a facility
// @Summary      Update facility
// @Tags         facilities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Facility ID"
// @Param        payload  body      service.UpdateFacilityRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=service.FacilityResponse}
// @Failure      404      {object}  response.Response
// @Router       /api/facilities/{id} [put]
func (h *FacilityHandler) UpdateFacility(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	facility, err := h.facilityService.UpdateFacility(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, facility))
}

// DeleteFacility removes a facility from the catalog
// @Summary      Delete facility
// @Tags         facilities
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Facility ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/facilities/{id} [delete]
func (h *FacilityHandler) DeleteFacility(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.facilityService.DeleteFacility(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": id}))
}
