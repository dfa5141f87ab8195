package payment

import "errors"

var (
	ErrNotFound            = errors.New("payment not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrForbidden           = errors.New("access denied")
	ErrValidation          = errors.New("validation error")
	// ErrProofRequired rejects approving a card/bank payment without an
	// attached proof artifact. Cash payments are exempt.
	ErrProofRequired = errors.New("proof of payment required for this method")
	// ErrAlreadyDecided guards the single approved/rejected transition.
	ErrAlreadyDecided = errors.New("payment already validated")
	// ErrInsufficient is a soft failure: the aggregate of approved payments
	// is short of the balance due, but the partial state is persisted.
	ErrInsufficient = errors.New("paid amount is insufficient to settle the reservation")
)
