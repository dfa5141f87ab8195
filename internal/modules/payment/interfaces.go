package payment

import (
	"context"

	"flamingo/internal/domain"
	"flamingo/internal/repository"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) error
	Delete(ctx context.Context, id int64) error
	FindApprovedByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error)
	FindByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error)
	ListFiltered(ctx context.Context, f repository.PaymentFilters) ([]domain.Payment, error)
}

type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
}

type OfferRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Offer, error)
	DecrementAvailableSeats(ctx context.Context, id int64) (bool, error)
}

type SeatAlertNotifier interface {
	NotifyLowSeats(ctx context.Context, offer *domain.Offer)
}
