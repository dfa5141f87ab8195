package reservation

import (
	"context"

	"flamingo/internal/domain"
)

type OfferRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Offer, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	ListByAgency(ctx context.Context, agencyID int64) ([]domain.Reservation, error)
	ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error)
	ListUnpaid(ctx context.Context) ([]domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
	Delete(ctx context.Context, id int64) error
}

type OverrideAuditRepository interface {
	Create(ctx context.Context, a *domain.OverrideAudit) error
	ListByReservation(ctx context.Context, reservationID int64) ([]domain.OverrideAudit, error)
}
