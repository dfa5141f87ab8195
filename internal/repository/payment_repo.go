package repository

import (
	"context"
	"time"

	"flamingo/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) DB() *gorm.DB { return r.db }

type paymentModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	ReservationID  int64     `gorm:"column:reservation_id;index"`
	Amount         float64   `gorm:"column:amount"`
	Method         string    `gorm:"column:method"`
	Type           string    `gorm:"column:type"`
	ProofURL       *string   `gorm:"column:proof_url"`
	Status         string    `gorm:"column:status"`
	ValidatedBy    *int64    `gorm:"column:validated_by"`
	ValidationNote *string   `gorm:"column:validation_note"`
	Comment        *string   `gorm:"column:comment"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainPayment(m paymentModel) *domain.Payment {
	return &domain.Payment{
		ID:             m.ID,
		ReservationID:  m.ReservationID,
		Amount:         m.Amount,
		Method:         domain.PaymentMethod(m.Method),
		Type:           domain.PaymentType(m.Type),
		ProofURL:       deref(m.ProofURL),
		Status:         domain.PaymentStatus(m.Status),
		ValidatedBy:    m.ValidatedBy,
		ValidationNote: deref(m.ValidationNote),
		Comment:        deref(m.Comment),
		CreatedAt:      m.CreatedAt,
	}
}

func toPaymentModel(p *domain.Payment) paymentModel {
	return paymentModel{
		ID:             p.ID,
		ReservationID:  p.ReservationID,
		Amount:         p.Amount,
		Method:         string(p.Method),
		Type:           string(p.Type),
		ProofURL:       nullable(p.ProofURL),
		Status:         string(p.Status),
		ValidatedBy:    p.ValidatedBy,
		ValidationNote: nullable(p.ValidationNote),
		Comment:        nullable(p.Comment),
		CreatedAt:      p.CreatedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	m := toPaymentModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPayment(m)
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var m paymentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	m := toPaymentModel(p)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&paymentModel{}, id).Error
}

// FindApprovedByReservation returns approved payments in creation order.
// Only these count toward montantPayé.
func (r *PaymentRepository) FindApprovedByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error) {
	return r.find(ctx, r.db.WithContext(ctx).
		Where("reservation_id = ? AND status = ?", reservationID, string(domain.PaymentApproved)).
		Order("created_at ASC"))
}

func (r *PaymentRepository) FindByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error) {
	return r.find(ctx, r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("created_at ASC"))
}

// PaymentFilters narrows the admin payment listing.
type PaymentFilters struct {
	Status   string
	Method   string
	AgencyID int64
	From     *time.Time
	To       *time.Time
}

func (r *PaymentRepository) ListFiltered(ctx context.Context, f PaymentFilters) ([]domain.Payment, error) {
	q := r.db.WithContext(ctx).Model(&paymentModel{}).Order("payments.created_at DESC")
	if f.Status != "" {
		q = q.Where("payments.status = ?", f.Status)
	}
	if f.Method != "" {
		q = q.Where("payments.method = ?", f.Method)
	}
	if f.From != nil {
		q = q.Where("payments.created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("payments.created_at <= ?", *f.To)
	}
	if f.AgencyID != 0 {
		q = q.Joins("JOIN reservations ON reservations.id = payments.reservation_id").
			Where("reservations.agency_id = ?", f.AgencyID)
	}
	return r.find(ctx, q)
}

func (r *PaymentRepository) find(ctx context.Context, q *gorm.DB) ([]domain.Payment, error) {
	var rows []paymentModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPayment(m))
	}
	return out, nil
}
