package service

import "errors"

// The error kinds surfaced by the services. Handlers map these onto HTTP
// status codes; everything else is treated as an internal failure.
var (
	// ErrValidation marks malformed client input. Wrap it with the detail:
	// fmt.Errorf("%w: what was wrong", ErrValidation).
	ErrValidation = errors.New("invalid request")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidRole        = errors.New("invalid role: must be admin, staff, or customer")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")

	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("operation not permitted for this user")

	ErrInvalidStatus     = errors.New("unknown booking status")
	ErrInvalidTransition = errors.New("illegal booking status transition")

	ErrBookingNotCompleted = errors.New("booking must be completed before it can be reviewed")
	ErrAlreadyReviewed     = errors.New("booking already has a review")
	ErrInvalidRating       = errors.New("rating must be an integer between 1 and 5")
)
