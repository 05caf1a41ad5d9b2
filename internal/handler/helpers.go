package handler

import (
	"errors"
	"net/http"

	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// statusForError maps the service error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is an internal failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailInUse), errors.Is(err, service.ErrAlreadyReviewed):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrBookingNotCompleted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidRating):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(status, response.Error(status, msg))
}

// actorFromContext rebuilds the acting identity from the claims stored by
// the auth middleware.
func actorFromContext(c *gin.Context) (service.Actor, bool) {
	rawID, ok := c.Get("userID")
	if !ok {
		return service.Actor{}, false
	}
	idStr, ok := rawID.(string)
	if !ok {
		return service.Actor{}, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return service.Actor{}, false
	}

	role := c.GetString("userRole")
	if role == "" {
		return service.Actor{}, false
	}

	return service.Actor{ID: id, Role: role}, true
}

func mustActor(c *gin.Context) (service.Actor, bool) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Identity not found in context"))
	}
	return actor, ok
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}
