package handler

import (
	"fmt"
	"net/http"
	"testing"

	"backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{service.ErrNotFound, http.StatusNotFound},
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrInvalidToken, http.StatusUnauthorized},
		{service.ErrEmailInUse, http.StatusConflict},
		{service.ErrAlreadyReviewed, http.StatusConflict},
		{service.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{service.ErrBookingNotCompleted, http.StatusUnprocessableEntity},
		{service.ErrInvalidRole, http.StatusBadRequest},
		{service.ErrInvalidStatus, http.StatusBadRequest},
		{service.ErrInvalidRating, http.StatusBadRequest},
		{service.ErrValidation, http.StatusBadRequest},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, statusForError(tc.err), "error %q", tc.err)
	}
}

// Validation failures arrive wrapped with the offending detail. They must
// stay 400s; the 500 branch would swallow the message and tell the caller
// nothing about what they sent.
func TestStatusForErrorKeepsWrappedValidationClientSide(t *testing.T) {
	for _, detail := range []string{
		"invalid scope, must be upcoming or past",
		"customer_id is required when booking on a customer's behalf",
	} {
		err := fmt.Errorf("%w: %s", service.ErrValidation, detail)
		assert.Equal(t, http.StatusBadRequest, statusForError(err))
		assert.Contains(t, err.Error(), detail)
	}
}
