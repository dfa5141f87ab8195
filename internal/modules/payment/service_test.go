package payment

import (
	"context"
	"testing"

	"flamingo/internal/domain"
	"flamingo/internal/repository"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePaymentRepo struct {
	payments map[int64]*domain.Payment
	nextID   int64
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[int64]*domain.Payment{}, nextID: 1}
}

func (m *fakePaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	p.ID = m.nextID
	m.nextID++
	cp := *p
	m.payments[p.ID] = &cp
	return nil
}

func (m *fakePaymentRepo) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *fakePaymentRepo) Update(ctx context.Context, p *domain.Payment) error {
	cp := *p
	m.payments[p.ID] = &cp
	return nil
}

func (m *fakePaymentRepo) Delete(ctx context.Context, id int64) error {
	delete(m.payments, id)
	return nil
}

func (m *fakePaymentRepo) FindApprovedByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error) {
	var out []domain.Payment
	for id := int64(1); id < m.nextID; id++ {
		p, ok := m.payments[id]
		if ok && p.ReservationID == reservationID && p.Status == domain.PaymentApproved {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *fakePaymentRepo) FindByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error) {
	var out []domain.Payment
	for id := int64(1); id < m.nextID; id++ {
		if p, ok := m.payments[id]; ok && p.ReservationID == reservationID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *fakePaymentRepo) ListFiltered(ctx context.Context, f repository.PaymentFilters) ([]domain.Payment, error) {
	var out []domain.Payment
	for id := int64(1); id < m.nextID; id++ {
		if p, ok := m.payments[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeReservationRepo struct {
	reservation *domain.Reservation
	updates     int
}

func (m *fakeReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if m.reservation == nil || m.reservation.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return m.reservation, nil
}

func (m *fakeReservationRepo) Update(ctx context.Context, r *domain.Reservation) error {
	m.updates++
	m.reservation = r
	return nil
}

type fakeOfferRepo struct {
	offer      *domain.Offer
	decrements int
}

func (m *fakeOfferRepo) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	if m.offer == nil || m.offer.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return m.offer, nil
}

func (m *fakeOfferRepo) DecrementAvailableSeats(ctx context.Context, id int64) (bool, error) {
	if m.offer == nil || m.offer.AvailableSeats <= 0 {
		return false, nil
	}
	m.decrements++
	m.offer.AvailableSeats--
	return true, nil
}

type fakeNotifier struct {
	alerts []*domain.Offer
}

func (m *fakeNotifier) NotifyLowSeats(ctx context.Context, offer *domain.Offer) {
	m.alerts = append(m.alerts, offer)
}

func admin() domain.Principal {
	return domain.Principal{ID: 1, Role: domain.RoleAdmin}
}

func agency(id int64) domain.Principal {
	return domain.Principal{ID: id, Role: domain.RoleAgency}
}

func setup(reservation *domain.Reservation, offer *domain.Offer) (*Service, *fakePaymentRepo, *fakeReservationRepo, *fakeOfferRepo, *fakeNotifier) {
	payments := newFakePaymentRepo()
	reservations := &fakeReservationRepo{reservation: reservation}
	offers := &fakeOfferRepo{offer: offer}
	notifs := &fakeNotifier{}
	return NewService(payments, reservations, offers, notifs), payments, reservations, offers, notifs
}

func TestCreate_AgencyCannotPayForeignReservation(t *testing.T) {
	r := &domain.Reservation{ID: 10, AgencyID: 5, TotalPrice: 12000, Status: domain.ReservationPending}
	svc, _, _, _, _ := setup(r, nil)

	_, err := svc.Create(context.Background(), agency(6), CreatePaymentRequest{
		ReservationID: 10, Amount: 5000, Method: "card", Type: "acompte",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreate_AppendsToReservationHistory(t *testing.T) {
	r := &domain.Reservation{ID: 10, AgencyID: 5, TotalPrice: 12000, Status: domain.ReservationPending}
	svc, _, reservations, _, _ := setup(r, nil)

	pay, err := svc.Create(context.Background(), agency(5), CreatePaymentRequest{
		ReservationID: 10, Amount: 5000, Method: "card", Type: "acompte", ProofURL: "/uploads/p.jpg",
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, pay.Status)
	assert.Equal(t, []int64{pay.ID}, reservations.reservation.PaymentIDs)
	// money state only moves on admin validation
	assert.Equal(t, domain.ReservationPending, reservations.reservation.Status)
	assert.Equal(t, float64(0), reservations.reservation.MontantPaye)
}

func TestValidate_TwoApprovalsSettleAndTakeOneSeat(t *testing.T) {
	offer := &domain.Offer{ID: 3, TotalSeats: 20, AvailableSeats: 10, AlertThreshold: 2}
	r := &domain.Reservation{ID: 10, AgencyID: 5, OfferID: 3, TotalPrice: 12000, ResteAPayer: 12000, Status: domain.ReservationPending}
	svc, payments, reservations, offers, notifs := setup(r, offer)

	first, _ := svc.Create(context.Background(), agency(5), CreatePaymentRequest{
		ReservationID: 10, Amount: 5000, Method: "card", Type: "acompte", ProofURL: "/uploads/a.jpg",
	})
	second, _ := svc.Create(context.Background(), agency(5), CreatePaymentRequest{
		ReservationID: 10, Amount: 7000, Method: "bank", Type: "solde", ProofURL: "/uploads/b.jpg",
	})

	out, err := svc.Validate(context.Background(), admin(), first.ID, ValidatePaymentRequest{Status: "approved"})
	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationPartialPaid, out.Status)
	assert.Equal(t, float64(5000), out.MontantPaye)
	assert.Equal(t, float64(7000), out.ResteAPayer)
	assert.Equal(t, 0, offers.decrements)

	out, err = svc.Validate(context.Background(), admin(), second.ID, ValidatePaymentRequest{Status: "approved"})
	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationPaid, out.Status)
	assert.Equal(t, float64(12000), out.MontantPaye)
	assert.Equal(t, float64(0), out.ResteAPayer)

	// the seat is taken exactly once, on the transition into paid
	assert.Equal(t, 1, offers.decrements)
	assert.Equal(t, 9, offers.offer.AvailableSeats)
	assert.Empty(t, notifs.alerts)

	stored, _ := payments.GetByID(context.Background(), second.ID)
	assert.Equal(t, domain.PaymentApproved, stored.Status)
	assert.NotNil(t, stored.ValidatedBy)
	assert.Equal(t, int64(1), *stored.ValidatedBy)
	assert.GreaterOrEqual(t, reservations.updates, 2)
}

func TestValidate_SeatNotTakenTwiceOnReaggregation(t *testing.T) {
	offer := &domain.Offer{ID: 3, TotalSeats: 5, AvailableSeats: 5, AlertThreshold: 1}
	r := &domain.Reservation{ID: 10, AgencyID: 5, OfferID: 3, TotalPrice: 1000, ResteAPayer: 1000, Status: domain.ReservationPending}
	svc, _, _, offers, _ := setup(r, offer)

	first, _ := svc.Create(context.Background(), agency(5), CreatePaymentRequest{
		ReservationID: 10, Amount: 1000, Method: "cash", Type: "total",
	})
	_, err := svc.Validate(context.Background(), admin(), first.ID, ValidatePaymentRequest{Status: "approved"})
	assert.NoError(t, err)
	assert.Equal(t, 1, offers.decrements)

	// an overpayment validated later must not take another seat
	extra, _ := svc.Create(context.Background(), agency(5), CreatePaymentRequest{
		ReservationID: 10, Amount: 500, Method: "cash", Type: "solde",
	})
	_, err = svc.Validate(context.Background(), admin(), extra.ID, ValidatePaymentRequest{Status: "approved"})
	assert.NoError(t, err)
	assert.Equal(t, 1, offers.decrements)
}

func TestValidate_CardApprovalRequiresProof(t *testing.T) {
	r := &domain.Reservation{ID: 10, AgencyID: 5, TotalPrice: 12000, ResteAPayer: 12000, Status: domain.ReservationPending}
	svc, payments, _, _, _ := setup(r, nil)

	pay, _ := svc.Create(context.Background(), agency(5), CreatePaymentRequest{
		ReservationID: 10, Amount: 5000, Method: "card", Type: "acompte",
	})

	_, err := svc.Validate(context.Background(), admin(), pay.ID, ValidatePaymentRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrProofRequired)

	stored, _ := payments.GetByID(context.Background(), pay.ID)
	assert.Equal(t, domain.PaymentPending, stored.Status)
}

func TestValidate_CashApprovalExemptFromProof(t *testing.T) {
	r := &domain.Reservation{ID: 10, AgencyID: 5, OfferID: 3, TotalPrice: 5000, ResteAPayer: 5000, Status: domain.ReservationPending}
	svc, _, _, _, _ := setup(r, &domain.Offer{ID: 3, TotalSeats: 5, AvailableSeats: 5})

	pay, _ := svc.Create(context.Background(), agency(5), CreatePaymentRequest{
		ReservationID: 10, Amount: 5000, Method: "cash", Type: "total",
	})

	out, err := svc.Validate(context.Background(), admin(), pay.ID, ValidatePaymentRequest{Status: "approved", ValidationNote: "counted at the desk"})
	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationPaid, out.Status)
}

func TestValidate_RejectionWithoutProofIsAllowed(t *testing.T) {
	r := &domain.Reservation{ID: 10, AgencyID: 5, TotalPrice: 12000, ResteAPayer: 12000, Status: domain.ReservationPending}
	svc, payments, _, _, _ := setup(r, nil)

	pay, _ := svc.Create(context.Background(), agency(5), CreatePaymentRequest{
		ReservationID: 10, Amount: 5000, Method: "card", Type: "acompte",
	})

	out, err := svc.Validate(context.Background(), admin(), pay.ID, ValidatePaymentRequest{Status: "rejected", ValidationNote: "illegible receipt"})
	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationPending, out.Status)

	stored, _ := payments.GetByID(context.Background(), pay.ID)
	assert.Equal(t, domain.PaymentRejected, stored.Status)
	assert.Equal(t, "illegible receipt", stored.ValidationNote)
}

func TestValidate_SecondDecisionRejected(t *testing.T) {
	r := &domain.Reservation{ID: 10, AgencyID: 5, OfferID: 3, TotalPrice: 5000, ResteAPayer: 5000, Status: domain.ReservationPending}
	svc, _, _, _, _ := setup(r, &domain.Offer{ID: 3, TotalSeats: 5, AvailableSeats: 5})

	pay, _ := svc.Create(context.Background(), agency(5), CreatePaymentRequest{
		ReservationID: 10, Amount: 5000, Method: "cash", Type: "total",
	})

	_, err := svc.Validate(context.Background(), admin(), pay.ID, ValidatePaymentRequest{Status: "approved"})
	assert.NoError(t, err)

	_, err = svc.Validate(context.Background(), admin(), pay.ID, ValidatePaymentRequest{Status: "rejected"})
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestValidate_AgencyForbidden(t *testing.T) {
	svc, _, _, _, _ := setup(nil, nil)
	_, err := svc.Validate(context.Background(), agency(5), 1, ValidatePaymentRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDirectValidate_ManualAmountSettles(t *testing.T) {
	offer := &domain.Offer{ID: 3, TotalSeats: 10, AvailableSeats: 4, AlertThreshold: 3}
	r := &domain.Reservation{ID: 10, AgencyID: 5, OfferID: 3, TotalPrice: 8000, ResteAPayer: 8000, Status: domain.ReservationPending}
	svc, payments, _, offers, notifs := setup(r, offer)

	out, err := svc.DirectValidate(context.Background(), admin(), 10, DirectValidateRequest{Type: "total", Montant: 8000})
	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationPaid, out.Status)
	assert.Equal(t, float64(8000), out.MontantPaye)
	assert.Equal(t, float64(0), out.ResteAPayer)
	assert.Equal(t, 1, offers.decrements)

	// 4 -> 3 crosses the alert threshold
	assert.Len(t, notifs.alerts, 1)

	assert.Len(t, out.PaymentIDs, 1)
	synthesized, _ := payments.GetByID(context.Background(), out.PaymentIDs[0])
	assert.Equal(t, domain.MethodCash, synthesized.Method)
	assert.Equal(t, domain.PaymentApproved, synthesized.Status)
	assert.Equal(t, "manual entry by admin on validation", synthesized.ValidationNote)
}

func TestDirectValidate_ManualAmountBelowTotalIsPartial(t *testing.T) {
	r := &domain.Reservation{ID: 10, AgencyID: 5, OfferID: 3, TotalPrice: 8000, ResteAPayer: 8000, Status: domain.ReservationPending}
	svc, _, _, offers, _ := setup(r, &domain.Offer{ID: 3, TotalSeats: 10, AvailableSeats: 4})

	out, err := svc.DirectValidate(context.Background(), admin(), 10, DirectValidateRequest{Type: "acompte", Montant: 3000})
	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationPartialPaid, out.Status)
	assert.Equal(t, float64(3000), out.MontantPaye)
	assert.Equal(t, float64(5000), out.ResteAPayer)
	assert.Equal(t, 0, offers.decrements)
}

func TestDirectValidate_InsufficientIsSoftFailure(t *testing.T) {
	r := &domain.Reservation{ID: 10, AgencyID: 5, OfferID: 3, TotalPrice: 8000, ResteAPayer: 8000, Status: domain.ReservationPending}
	svc, _, reservations, _, _ := setup(r, &domain.Offer{ID: 3, TotalSeats: 10, AvailableSeats: 4})

	pay, _ := svc.Create(context.Background(), agency(5), CreatePaymentRequest{
		ReservationID: 10, Amount: 3000, Method: "cash", Type: "acompte",
	})
	_, err := svc.Validate(context.Background(), admin(), pay.ID, ValidatePaymentRequest{Status: "approved"})
	assert.NoError(t, err)

	out, err := svc.DirectValidate(context.Background(), admin(), 10, DirectValidateRequest{})
	assert.ErrorIs(t, err, ErrInsufficient)
	assert.NotNil(t, out)
	assert.Equal(t, domain.ReservationPartialPaid, out.Status)
	assert.Equal(t, float64(3000), out.MontantPaye)
	assert.Equal(t, float64(5000), out.ResteAPayer)

	// the recomputed partial state survives the refusal
	assert.Equal(t, domain.ReservationPartialPaid, reservations.reservation.Status)
	assert.Equal(t, float64(3000), reservations.reservation.MontantPaye)
}

func TestDirectValidate_ReservationNotFound(t *testing.T) {
	svc, _, _, _, _ := setup(nil, nil)
	_, err := svc.DirectValidate(context.Background(), admin(), 404, DirectValidateRequest{Type: "total", Montant: 100})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
