package offer

import (
	"context"
	"errors"
	"strings"
	"time"

	"flamingo/internal/domain"
	"flamingo/internal/pkg/validator"

	"gorm.io/gorm"
)

// Offers created without an explicit threshold alert at 5 remaining seats.
const defaultAlertThreshold = 5

type Service struct {
	offers       OfferRepository
	reservations ReservationRepository
}

func NewService(offers OfferRepository, reservations ReservationRepository) *Service {
	return &Service{offers: offers, reservations: reservations}
}

// Create publishes a new offer. The seat counter starts full; it only
// moves down as reservations reach paid.
func (s *Service) Create(ctx context.Context, p domain.Principal, req CreateOfferRequest) (*domain.Offer, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validateRules(req.PricingRules); err != nil {
		return nil, err
	}
	if err := validateRooms(req.RoomTypes); err != nil {
		return nil, err
	}

	threshold := req.AlertThreshold
	if threshold == 0 {
		threshold = defaultAlertThreshold
	}

	o := &domain.Offer{
		Title:              strings.TrimSpace(req.Title),
		Country:            req.Country,
		Cities:             req.Cities,
		Hotels:             req.Hotels,
		DepartDates:        req.DepartDates,
		Description:        req.Description,
		DailyProgram:       req.DailyProgram,
		Inclusions:         req.Inclusions,
		Exclusions:         req.Exclusions,
		PricingRules:       req.PricingRules,
		CancellationPolicy: req.CancellationPolicy,
		TotalSeats:         req.TotalSeats,
		AvailableSeats:     req.TotalSeats,
		AlertThreshold:     threshold,
		ImageURL:           req.ImageURL,
		RoomTypes:          req.RoomTypes,
		CreatedBy:          p.ID,
		CreatedAt:          time.Now(),
	}
	if errs := validator.Validate(o); errs != nil {
		return nil, ErrValidation
	}
	if err := s.offers.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	o, err := s.offers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Offer, error) {
	return s.offers.List(ctx)
}

// Update patches the provided fields. Raising or lowering totalSeats keeps
// the number of already taken seats, so availableSeats shifts by the same
// delta (never below zero).
func (s *Service) Update(ctx context.Context, p domain.Principal, id int64, req UpdateOfferRequest) (*domain.Offer, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PricingRules != nil {
		if err := validateRules(*req.PricingRules); err != nil {
			return nil, err
		}
		o.PricingRules = *req.PricingRules
	}
	if req.RoomTypes != nil {
		if err := validateRooms(*req.RoomTypes); err != nil {
			return nil, err
		}
		o.RoomTypes = *req.RoomTypes
	}
	if req.Title != nil {
		o.Title = *req.Title
	}
	if req.Country != nil {
		o.Country = *req.Country
	}
	if req.Cities != nil {
		o.Cities = *req.Cities
	}
	if req.Hotels != nil {
		o.Hotels = *req.Hotels
	}
	if req.DepartDates != nil {
		o.DepartDates = *req.DepartDates
	}
	if req.Description != nil {
		o.Description = *req.Description
	}
	if req.DailyProgram != nil {
		o.DailyProgram = *req.DailyProgram
	}
	if req.Inclusions != nil {
		o.Inclusions = *req.Inclusions
	}
	if req.Exclusions != nil {
		o.Exclusions = *req.Exclusions
	}
	if req.CancellationPolicy != nil {
		o.CancellationPolicy = *req.CancellationPolicy
	}
	if req.AlertThreshold != nil {
		o.AlertThreshold = *req.AlertThreshold
	}
	if req.ImageURL != nil {
		o.ImageURL = *req.ImageURL
	}
	if req.TotalSeats != nil {
		taken := o.TotalSeats - o.AvailableSeats
		o.TotalSeats = *req.TotalSeats
		o.AvailableSeats = o.TotalSeats - taken
		if o.AvailableSeats < 0 {
			o.AvailableSeats = 0
		}
	}

	if err := s.offers.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Delete(ctx context.Context, p domain.Principal, id int64) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.offers.Delete(ctx, id)
}

// Reservations lists all reservations placed against one offer.
func (s *Service) Reservations(ctx context.Context, p domain.Principal, id int64) ([]domain.Reservation, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.reservations.ListByOffer(ctx, id)
}

func validateRules(rules []domain.PricingRule) error {
	for _, r := range rules {
		if r.MinAge < 0 || r.MaxAge < r.MinAge || r.Price < 0 {
			return ErrValidation
		}
	}
	return nil
}

func validateRooms(rooms []domain.RoomType) error {
	seen := make(map[string]bool, len(rooms))
	for _, rt := range rooms {
		if rt.Label == "" || rt.Price < 0 || seen[rt.Label] {
			return ErrValidation
		}
		seen[rt.Label] = true
	}
	return nil
}
