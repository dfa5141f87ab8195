package repository

import (
	"context"
	"time"

	"flamingo/internal/domain"

	"gorm.io/gorm"
)

type OverrideAuditRepository struct {
	db *gorm.DB
}

func NewOverrideAuditRepository(db *gorm.DB) *OverrideAuditRepository {
	return &OverrideAuditRepository{db: db}
}

type overrideAuditModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	ReservationID   int64     `gorm:"column:reservation_id;index"`
	AdminID         int64     `gorm:"column:admin_id"`
	PrevMontantPaye float64   `gorm:"column:prev_montant_paye"`
	PrevResteAPayer float64   `gorm:"column:prev_reste_a_payer"`
	NewMontantPaye  *float64  `gorm:"column:new_montant_paye"`
	NewResteAPayer  *float64  `gorm:"column:new_reste_a_payer"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (overrideAuditModel) TableName() string { return "override_audits" }

func (r *OverrideAuditRepository) Create(ctx context.Context, a *domain.OverrideAudit) error {
	m := overrideAuditModel{
		ReservationID:   a.ReservationID,
		AdminID:         a.AdminID,
		PrevMontantPaye: a.PrevMontantPaye,
		PrevResteAPayer: a.PrevResteAPayer,
		NewMontantPaye:  a.NewMontantPaye,
		NewResteAPayer:  a.NewResteAPayer,
		CreatedAt:       a.CreatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	a.ID = m.ID
	return nil
}

func (r *OverrideAuditRepository) ListByReservation(ctx context.Context, reservationID int64) ([]domain.OverrideAudit, error) {
	var rows []overrideAuditModel
	tx := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("created_at ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.OverrideAudit, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.OverrideAudit{
			ID:              m.ID,
			ReservationID:   m.ReservationID,
			AdminID:         m.AdminID,
			PrevMontantPaye: m.PrevMontantPaye,
			PrevResteAPayer: m.PrevResteAPayer,
			NewMontantPaye:  m.NewMontantPaye,
			NewResteAPayer:  m.NewResteAPayer,
			CreatedAt:       m.CreatedAt,
		})
	}
	return out, nil
}
