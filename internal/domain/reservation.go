package domain

import "time"

type ReservationStatus string

const (
	ReservationPending ReservationStatus = "pending"
	// ReservationPendingPayment is set only when an agency uploads a proof
	// of payment; aggregation reclassifies it like pending.
	ReservationPendingPayment ReservationStatus = "pending_payment"
	ReservationPartialPaid    ReservationStatus = "partial_paid"
	ReservationPaid           ReservationStatus = "paid"
	ReservationRejected       ReservationStatus = "rejected"
)

// Client is one traveler within a reservation. PrixFinal is computed at
// submission time and never recomputed afterwards.
type Client struct {
	FullName         string  `json:"fullName"`
	BirthDate        string  `json:"birthDate"`
	Passport         string  `json:"passport,omitempty"`
	RoomTypeSelected string  `json:"roomTypeSelected"`
	PrixFinal        float64 `json:"prixFinal"`
}

type Reservation struct {
	ID                 int64             `json:"id"`
	OfferID            int64             `json:"offer"`
	AgencyID           int64             `json:"agency"`
	Clients            []Client          `json:"clients"`
	Status             ReservationStatus `json:"status"`
	TotalPrice         float64           `json:"totalPrice"`
	MontantPaye        float64           `json:"montantPayé"`
	ResteAPayer        float64           `json:"resteAPayer"`
	PaymentIDs         []int64           `json:"payments"`
	PassportFiles      []string          `json:"passportFiles,omitempty"`
	PaymentProof       string            `json:"paymentProof,omitempty"`
	DepartDateSelected string            `json:"departDateSelected,omitempty"`
	ReturnDateSelected string            `json:"returnDateSelected,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
}

// OverrideAudit records an administrative override of montantPayé /
// resteAPayer: who changed what, from which previous values.
type OverrideAudit struct {
	ID              int64     `json:"id"`
	ReservationID   int64     `json:"reservation"`
	AdminID         int64     `json:"admin"`
	PrevMontantPaye float64   `json:"prevMontantPayé"`
	PrevResteAPayer float64   `json:"prevResteAPayer"`
	NewMontantPaye  *float64  `json:"newMontantPayé,omitempty"`
	NewResteAPayer  *float64  `json:"newResteAPayer,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
