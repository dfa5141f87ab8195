package domain

import "time"

type PaymentMethod string

const (
	MethodCard PaymentMethod = "card"
	MethodBank PaymentMethod = "bank"
	MethodCash PaymentMethod = "cash"
)

type PaymentType string

const (
	TypeAcompte       PaymentType = "acompte"
	TypeSolde         PaymentType = "solde"
	TypeTotal         PaymentType = "total"
	TypeRemboursement PaymentType = "remboursement"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

// Payment transitions to approved/rejected exactly once; an approved
// payment is immutable and counted permanently toward montantPayé.
type Payment struct {
	ID             int64         `json:"id"`
	ReservationID  int64         `json:"reservation"`
	Amount         float64       `json:"amount" validate:"required,gt=0"`
	Method         PaymentMethod `json:"method" validate:"required,oneof=card bank cash"`
	Type           PaymentType   `json:"type" validate:"required,oneof=acompte solde total remboursement"`
	ProofURL       string        `json:"proofUrl,omitempty"`
	Status         PaymentStatus `json:"status"`
	ValidatedBy    *int64        `json:"validatedBy,omitempty"`
	ValidationNote string        `json:"validationNote,omitempty"`
	Comment        string        `json:"comment,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
}
