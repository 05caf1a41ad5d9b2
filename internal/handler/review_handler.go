package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/api/reviews")
	{
		reviews.POST("", middleware.RequireAuth(), h.CreateReview)
		reviews.DELETE("/:id", middleware.RequireAuth(), h.DeleteReview)
		reviews.GET("/mine", middleware.RequireAuth(), h.ListMyReviews)
		reviews.GET("/customer/:id", middleware.RequireAuth(), h.ListCustomerReviews)
	}

	// Staff rating lookups live next to the staff directory.
	router.GET("/api/staff/:id/reviews", h.ListStaffReviews)
	router.GET("/api/staff/:id/rating", h.GetStaffRating)
}

// CreateReview leaves a review on a completed booking
// @Summary      Create review
// @Description  Only the booking's customer may review, and only once the booking is completed
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateReviewRequest  true  "Review"
// @Success      201      {object}  response.Response{data=service.ReviewResponse}
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req service.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, review))
}

// DeleteReview removes a review, by its author or an admin
// @Summary      Delete review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Review ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": id}))
}

// ListMyReviews returns the caller's own reviews
// @Summary      List own reviews
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.ReviewResponse}
// @Router       /api/reviews/mine [get]
func (h *ReviewHandler) ListMyReviews(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListCustomerReviews(c.Request.Context(), actor, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, reviews))
}

// ListCustomerReviews returns a customer's reviews, self or admin
// @Summary      List customer reviews
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  response.Response{data=[]service.ReviewResponse}
// @Failure      403  {object}  response.Response
// @Router       /api/reviews/customer/{id} [get]
func (h *ReviewHandler) ListCustomerReviews(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListCustomerReviews(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, reviews))
}

// ListStaffReviews returns reviews left on a staff member
// @Summary      List staff reviews
// @Tags         staff
// @Produce      json
// @Param        id   path      string  true  "Staff ID"
// @Success      200  {object}  response.Response{data=[]service.ReviewResponse}
// @Router       /api/staff/{id}/reviews [get]
func (h *ReviewHandler) ListStaffReviews(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListStaffReviews(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, reviews))
}

// GetStaffRating returns the derived average rating and review count
// @Summary      Staff rating summary
// @Tags         staff
// @Produce      json
// @Param        id   path      string  true  "Staff ID"
// @Success      200  {object}  response.Response{data=service.RatingSummary}
// @Router       /api/staff/{id}/rating [get]
func (h *ReviewHandler) GetStaffRating(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.reviewService.StaffRatingSummary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
