package payment

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"flamingo/internal/domain"
	"flamingo/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	payments     PaymentRepository
	reservations ReservationRepository
	offers       OfferRepository
	notifs       SeatAlertNotifier
}

func NewService(payments PaymentRepository, reservations ReservationRepository, offers OfferRepository, notifs SeatAlertNotifier) *Service {
	return &Service{
		payments:     payments,
		reservations: reservations,
		offers:       offers,
		notifs:       notifs,
	}
}

// Create records an agency payment in pending status and appends it to the
// reservation's payment history. The reservation status is untouched;
// only admin validation moves money state.
func (s *Service) Create(ctx context.Context, p domain.Principal, req CreatePaymentRequest) (*domain.Payment, error) {
	if !p.IsAgency() && !p.IsAdmin() {
		return nil, ErrForbidden
	}

	r, err := s.getReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if p.IsAgency() && r.AgencyID != p.ID {
		return nil, ErrForbidden
	}

	pay := &domain.Payment{
		ReservationID: req.ReservationID,
		Amount:        req.Amount,
		Method:        domain.PaymentMethod(req.Method),
		Type:          domain.PaymentType(req.Type),
		ProofURL:      req.ProofURL,
		Status:        domain.PaymentPending,
		Comment:       req.Comment,
		CreatedAt:     time.Now(),
	}
	if err := s.payments.Create(ctx, pay); err != nil {
		return nil, err
	}

	r.PaymentIDs = append(r.PaymentIDs, pay.ID)
	if err := s.reservations.Update(ctx, r); err != nil {
		return nil, err
	}
	return pay, nil
}

func (s *Service) GetByID(ctx context.Context, p domain.Principal, id int64) (*domain.Payment, error) {
	pay, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.IsAgency() {
		r, err := s.getReservation(ctx, pay.ReservationID)
		if err != nil {
			return nil, err
		}
		if r.AgencyID != p.ID {
			return nil, ErrForbidden
		}
	}
	return pay, nil
}

func (s *Service) List(ctx context.Context, p domain.Principal, f repository.PaymentFilters) ([]domain.Payment, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.payments.ListFiltered(ctx, f)
}

func (s *Service) Delete(ctx context.Context, p domain.Principal, id int64) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}
	return s.payments.Delete(ctx, id)
}

// Validate applies the admin decision to one payment, exactly once, then
// re-aggregates the reservation's money state from approved payments.
// Approving a card/bank payment without a proof artifact fails validation
// and leaves the payment pending; cash only needs a note.
func (s *Service) Validate(ctx context.Context, p domain.Principal, paymentID int64, req ValidatePaymentRequest) (*domain.Reservation, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}

	pay, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if pay.Status != domain.PaymentPending {
		return nil, ErrAlreadyDecided
	}

	decision := domain.PaymentStatus(req.Status)
	if decision == domain.PaymentApproved && pay.Method != domain.MethodCash && pay.ProofURL == "" {
		return nil, ErrProofRequired
	}

	pay.Status = decision
	pay.ValidatedBy = &p.ID
	if req.ValidationNote != "" {
		pay.ValidationNote = req.ValidationNote
	}
	if err := s.payments.Update(ctx, pay); err != nil {
		return nil, err
	}

	r, err := s.getReservation(ctx, pay.ReservationID)
	if err != nil {
		return nil, err
	}
	if err := s.reaggregate(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// DirectValidate settles a reservation from the admin side. With a positive
// amount it synthesizes an approved cash payment and applies it; without
// one it re-aggregates existing approved payments and reports Insufficient
// when the total is still short — the partial state is persisted either way.
func (s *Service) DirectValidate(ctx context.Context, p domain.Principal, reservationID int64, req DirectValidateRequest) (*domain.Reservation, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}

	r, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if req.Type != "" && req.Montant > 0 {
		pay := &domain.Payment{
			ReservationID:  r.ID,
			Amount:         req.Montant,
			Method:         domain.MethodCash,
			Type:           domain.PaymentType(req.Type),
			Status:         domain.PaymentApproved,
			ValidatedBy:    &p.ID,
			ValidationNote: "manual entry by admin on validation",
			CreatedAt:      time.Now(),
		}
		if err := s.payments.Create(ctx, pay); err != nil {
			return nil, err
		}

		wasPaid := r.Status == domain.ReservationPaid
		r.PaymentIDs = append(r.PaymentIDs, pay.ID)
		r.MontantPaye += req.Montant
		r.ResteAPayer = math.Max(0, r.TotalPrice-r.MontantPaye)
		if r.ResteAPayer > 0 {
			r.Status = domain.ReservationPartialPaid
		} else {
			r.Status = domain.ReservationPaid
			if !wasPaid {
				s.takeSeat(ctx, r.OfferID)
			}
		}
		if err := s.reservations.Update(ctx, r); err != nil {
			return nil, err
		}
		return r, nil
	}

	if err := s.reaggregate(ctx, r); err != nil {
		return nil, err
	}
	if r.MontantPaye < r.TotalPrice {
		// soft failure: the recomputed partial state is already saved
		return r, ErrInsufficient
	}
	return r, nil
}

// reaggregate recomputes montantPayé/resteAPayer from approved payments
// and reclassifies the reservation. The offer seat is taken exactly once,
// on the transition into paid.
func (s *Service) reaggregate(ctx context.Context, r *domain.Reservation) error {
	approved, err := s.payments.FindApprovedByReservation(ctx, r.ID)
	if err != nil {
		return err
	}

	var totalPaid float64
	for _, pay := range approved {
		totalPaid += pay.Amount
	}

	wasPaid := r.Status == domain.ReservationPaid
	r.MontantPaye = totalPaid
	r.ResteAPayer = math.Max(0, r.TotalPrice-totalPaid)

	switch {
	case r.ResteAPayer <= 0:
		r.Status = domain.ReservationPaid
		if !wasPaid {
			s.takeSeat(ctx, r.OfferID)
		}
	case totalPaid > 0:
		r.Status = domain.ReservationPartialPaid
	default:
		r.Status = domain.ReservationPending
	}

	return s.reservations.Update(ctx, r)
}

// takeSeat decrements the offer's availableSeats conditionally and raises
// a low-seat alert when the counter drops to the threshold. Seats are
// never restored by any later transition.
func (s *Service) takeSeat(ctx context.Context, offerID int64) {
	taken, err := s.offers.DecrementAvailableSeats(ctx, offerID)
	if err != nil {
		log.Printf("level=error msg=seat decrement failed offer_id=%d err=%v", offerID, err)
		return
	}
	if !taken {
		log.Printf("level=warn msg=no seat left to take offer_id=%d", offerID)
		return
	}

	if s.notifs == nil {
		return
	}
	offer, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return
	}
	if offer.AvailableSeats <= offer.AlertThreshold {
		s.notifs.NotifyLowSeats(ctx, offer)
	}
}

func (s *Service) getReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return r, nil
}
