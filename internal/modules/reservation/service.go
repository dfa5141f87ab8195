package reservation

import (
	"context"
	"errors"
	"time"

	"flamingo/internal/domain"
	"flamingo/internal/modules/pricing"

	"gorm.io/gorm"
)

type Service struct {
	offers       OfferRepository
	reservations ReservationRepository
	audits       OverrideAuditRepository
	pricingOpts  pricing.Options
}

func NewService(offers OfferRepository, reservations ReservationRepository, audits OverrideAuditRepository, pricingOpts pricing.Options) *Service {
	return &Service{
		offers:       offers,
		reservations: reservations,
		audits:       audits,
		pricingOpts:  pricingOpts,
	}
}

// Submit prices the roster and creates a pending reservation. Capacity is
// checked once, here, against the current availableSeats; seats are only
// taken later, when the reservation reaches paid.
func (s *Service) Submit(ctx context.Context, p domain.Principal, req SubmitRequest) (*domain.Reservation, error) {
	if !p.IsAgency() {
		return nil, ErrForbidden
	}

	clients, err := ParseRoster(req.Clients)
	if err != nil {
		return nil, err
	}

	offer, err := s.offers.GetByID(ctx, req.OfferID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferGone
		}
		return nil, err
	}

	var priced []domain.Client
	var total float64
	if len(clients) > 0 {
		res, err := pricing.Calculate(clients, offer.PricingRules, offer.RoomTypes, s.pricingOpts)
		if err != nil {
			if errors.Is(err, pricing.ErrUnmatchedRoom) {
				return nil, ErrValidation
			}
			return nil, err
		}
		priced = res.Clients
		total = res.Total
	}

	if offer.TotalSeats > 0 && len(priced) > offer.AvailableSeats {
		return nil, ErrCapacity
	}

	r := &domain.Reservation{
		OfferID:            req.OfferID,
		AgencyID:           p.ID,
		Clients:            priced,
		Status:             domain.ReservationPending,
		TotalPrice:         total,
		MontantPaye:        0,
		ResteAPayer:        total,
		DepartDateSelected: req.DepartDateSelected,
		ReturnDateSelected: req.ReturnDateSelected,
		CreatedAt:          time.Now(),
	}
	if err := s.reservations.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// List returns everything for admins, only the caller's reservations for
// agencies.
func (s *Service) List(ctx context.Context, p domain.Principal) ([]domain.Reservation, error) {
	if p.IsAgency() {
		return s.reservations.ListByAgency(ctx, p.ID)
	}
	return s.reservations.List(ctx)
}

func (s *Service) Get(ctx context.Context, p domain.Principal, id int64) (*domain.Reservation, error) {
	r, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsAgency() && r.AgencyID != p.ID {
		return nil, ErrForbidden
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, p domain.Principal, id int64) error {
	r, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}
	if p.IsAgency() && r.AgencyID != p.ID {
		return ErrForbidden
	}
	return s.reservations.Delete(ctx, id)
}

// AttachPaymentProof records an uploaded proof reference and flags the
// reservation as pending_payment unless it is already settled or rejected.
// The substatus is informational; aggregation treats it like pending.
func (s *Service) AttachPaymentProof(ctx context.Context, p domain.Principal, id int64, proofRef string) (*domain.Reservation, error) {
	if !p.IsAgency() {
		return nil, ErrForbidden
	}
	r, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.AgencyID != p.ID {
		return nil, ErrForbidden
	}

	r.PaymentProof = proofRef
	if r.Status != domain.ReservationRejected && r.Status != domain.ReservationPaid {
		r.Status = domain.ReservationPendingPayment
	}
	if err := s.reservations.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Reject sets status=rejected unconditionally. No payment or seat side
// effects; rejecting an already rejected reservation is a no-op.
func (s *Service) Reject(ctx context.Context, p domain.Principal, id int64) (*domain.Reservation, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	r, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Status = domain.ReservationRejected
	if err := s.reservations.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Reactivate moves a rejected reservation back to pending. Nothing else is
// restored: no seats, no payment state.
func (s *Service) Reactivate(ctx context.Context, p domain.Principal, id int64) (*domain.Reservation, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	r, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != domain.ReservationRejected {
		return nil, ErrConflict
	}
	r.Status = domain.ReservationPending
	if err := s.reservations.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Override overwrites montantPayé and/or resteAPayer directly, bypassing
// payment re-aggregation. It is an administrative escape hatch and may
// leave montantPayé + resteAPayer != totalPrice; the drift stays until the
// next approved-payment aggregation touches the reservation. Every call
// writes an audit row with the previous values.
func (s *Service) Override(ctx context.Context, p domain.Principal, id int64, req OverrideRequest) (*domain.Reservation, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	if req.MontantPaye == nil && req.ResteAPayer == nil {
		return nil, ErrValidation
	}
	r, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	audit := &domain.OverrideAudit{
		ReservationID:   r.ID,
		AdminID:         p.ID,
		PrevMontantPaye: r.MontantPaye,
		PrevResteAPayer: r.ResteAPayer,
		NewMontantPaye:  req.MontantPaye,
		NewResteAPayer:  req.ResteAPayer,
		CreatedAt:       time.Now(),
	}

	if req.MontantPaye != nil {
		r.MontantPaye = *req.MontantPaye
	}
	if req.ResteAPayer != nil {
		r.ResteAPayer = *req.ResteAPayer
	}
	if err := s.reservations.Update(ctx, r); err != nil {
		return nil, err
	}
	if err := s.audits.Create(ctx, audit); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) OverrideHistory(ctx context.Context, p domain.Principal, id int64) ([]domain.OverrideAudit, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	if _, err := s.getByID(ctx, id); err != nil {
		return nil, err
	}
	return s.audits.ListByReservation(ctx, id)
}

func (s *Service) ListPaid(ctx context.Context, p domain.Principal) ([]domain.Reservation, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.reservations.ListByStatus(ctx, domain.ReservationPaid)
}

func (s *Service) ListUnpaid(ctx context.Context, p domain.Principal) ([]domain.Reservation, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.reservations.ListUnpaid(ctx)
}

func (s *Service) getByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}
