package repository

import (
	"context"
	"time"

	"flamingo/internal/domain"
	"flamingo/internal/pkg/utils"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	OfferID            int64     `gorm:"column:offer_id;index"`
	AgencyID           int64     `gorm:"column:agency_id;index"`
	Clients            string    `gorm:"column:clients;type:text"`
	Status             string    `gorm:"column:status"`
	TotalPrice         float64   `gorm:"column:total_price"`
	MontantPaye        float64   `gorm:"column:montant_paye"`
	ResteAPayer        float64   `gorm:"column:reste_a_payer"`
	PaymentIDs         string    `gorm:"column:payment_ids;type:text"`
	PassportFiles      string    `gorm:"column:passport_files;type:text"`
	PaymentProof       string    `gorm:"column:payment_proof"`
	DepartDateSelected string    `gorm:"column:depart_date_selected"`
	ReturnDateSelected string    `gorm:"column:return_date_selected"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	return &domain.Reservation{
		ID:                 m.ID,
		OfferID:            m.OfferID,
		AgencyID:           m.AgencyID,
		Clients:            utils.FromJSONColumn[domain.Client](m.Clients),
		Status:             domain.ReservationStatus(m.Status),
		TotalPrice:         m.TotalPrice,
		MontantPaye:        m.MontantPaye,
		ResteAPayer:        m.ResteAPayer,
		PaymentIDs:         utils.FromJSONColumn[int64](m.PaymentIDs),
		PassportFiles:      utils.FromJSONColumn[string](m.PassportFiles),
		PaymentProof:       m.PaymentProof,
		DepartDateSelected: m.DepartDateSelected,
		ReturnDateSelected: m.ReturnDateSelected,
		CreatedAt:          m.CreatedAt,
	}
}

func toReservationModel(r *domain.Reservation) reservationModel {
	return reservationModel{
		ID:                 r.ID,
		OfferID:            r.OfferID,
		AgencyID:           r.AgencyID,
		Clients:            utils.ToJSONColumn(r.Clients),
		Status:             string(r.Status),
		TotalPrice:         r.TotalPrice,
		MontantPaye:        r.MontantPaye,
		ResteAPayer:        r.ResteAPayer,
		PaymentIDs:         utils.ToJSONColumn(r.PaymentIDs),
		PassportFiles:      utils.ToJSONColumn(r.PassportFiles),
		PaymentProof:       r.PaymentProof,
		DepartDateSelected: r.DepartDateSelected,
		ReturnDateSelected: r.ReturnDateSelected,
		CreatedAt:          r.CreatedAt,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*res = *toDomainReservation(m)
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	return r.find(ctx, r.db.WithContext(ctx).Order("created_at DESC"))
}

func (r *ReservationRepository) ListByAgency(ctx context.Context, agencyID int64) ([]domain.Reservation, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("agency_id = ?", agencyID).Order("created_at DESC"))
}

func (r *ReservationRepository) ListByOffer(ctx context.Context, offerID int64) ([]domain.Reservation, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("offer_id = ?", offerID).Order("created_at DESC"))
}

func (r *ReservationRepository) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("status = ?", string(status)).Order("created_at DESC"))
}

// ListUnpaid returns reservations awaiting money: proof uploaded or a
// positive outstanding balance.
func (r *ReservationRepository) ListUnpaid(ctx context.Context) ([]domain.Reservation, error) {
	return r.find(ctx, r.db.WithContext(ctx).
		Where("status = ? OR reste_a_payer > 0", string(domain.ReservationPendingPayment)).
		Order("created_at DESC"))
}

func (r *ReservationRepository) find(ctx context.Context, q *gorm.DB) ([]domain.Reservation, error) {
	var rows []reservationModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&reservationModel{}, id).Error
}
