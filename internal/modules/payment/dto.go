package payment

type CreatePaymentRequest struct {
	ReservationID int64   `json:"reservationId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Method        string  `json:"method" binding:"required,oneof=card bank cash"`
	Type          string  `json:"type" binding:"required,oneof=acompte solde total remboursement"`
	ProofURL      string  `json:"proofUrl"`
	Comment       string  `json:"comment"`
}

type ValidatePaymentRequest struct {
	Status         string `json:"status" binding:"required,oneof=approved rejected"`
	ValidationNote string `json:"validationNote"`
}

// DirectValidateRequest carries the optional manual amount an admin can
// enter when validating a reservation without a pre-existing payment.
type DirectValidateRequest struct {
	Type    string  `json:"type"`
	Montant float64 `json:"montant"`
}
