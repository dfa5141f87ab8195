package offer

import (
	"context"

	"flamingo/internal/domain"
)

type OfferRepository interface {
	Create(ctx context.Context, o *domain.Offer) error
	GetByID(ctx context.Context, id int64) (*domain.Offer, error)
	List(ctx context.Context) ([]domain.Offer, error)
	Update(ctx context.Context, o *domain.Offer) error
	Delete(ctx context.Context, id int64) error
}

type ReservationRepository interface {
	ListByOffer(ctx context.Context, offerID int64) ([]domain.Reservation, error)
}
