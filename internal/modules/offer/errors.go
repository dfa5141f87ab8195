package offer

import "errors"

var (
	ErrNotFound   = errors.New("offer not found")
	ErrForbidden  = errors.New("access denied")
	ErrValidation = errors.New("validation error")
)
