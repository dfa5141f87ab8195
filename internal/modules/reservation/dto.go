package reservation

import (
	"encoding/json"
	"mime/multipart"

	"flamingo/internal/domain"
)

type SubmitRequest struct {
	OfferID            int64           `json:"offer" binding:"required"`
	Clients            json.RawMessage `json:"clients" binding:"required"`
	DepartDateSelected string          `json:"departDateSelected"`
	ReturnDateSelected string          `json:"returnDateSelected"`
}

// ParseRoster accepts the clients payload either as a JSON array or as a
// JSON string containing one (multipart forms submit the latter).
func ParseRoster(raw json.RawMessage) ([]domain.Client, error) {
	var clients []domain.Client
	if err := json.Unmarshal(raw, &clients); err == nil {
		return clients, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, ErrValidation
	}
	if err := json.Unmarshal([]byte(s), &clients); err != nil {
		return nil, ErrValidation
	}
	return clients, nil
}

type OverrideRequest struct {
	MontantPaye *float64 `json:"montantPayé"`
	ResteAPayer *float64 `json:"resteAPayer"`
}

// ProofUploader stores an uploaded proof-of-payment artifact and returns
// the reference persisted on the reservation.
type ProofUploader interface {
	SaveProof(agencyID int64, file *multipart.FileHeader) (string, error)
}
