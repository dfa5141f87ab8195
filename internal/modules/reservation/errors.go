package reservation

import "errors"

var (
	ErrNotFound   = errors.New("reservation not found")
	ErrOfferGone  = errors.New("offer not found")
	ErrForbidden  = errors.New("access denied")
	ErrConflict   = errors.New("invalid reservation state for this transition")
	ErrValidation = errors.New("validation error")
	ErrCapacity   = errors.New("offer capacity reached")
)
