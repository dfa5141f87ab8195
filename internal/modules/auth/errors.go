package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotApproved blocks login for agency accounts awaiting admin review.
	ErrNotApproved = errors.New("account pending approval")
	ErrEmailTaken  = errors.New("email already in use")
	ErrNotFound    = errors.New("user not found")
	ErrForbidden   = errors.New("access denied")
	ErrValidation  = errors.New("validation error")
)
