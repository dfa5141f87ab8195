package report

import (
	"context"
	"time"

	"flamingo/internal/domain"
	"flamingo/internal/pkg/utils"

	"gorm.io/gorm"
)

// Service computes settlement reports over approved payments with SQL
// aggregates. Pending and rejected payments never count.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type Period struct {
	From *time.Time
	To   *time.Time
}

type MethodBreakdown struct {
	Method string  `json:"method"`
	Count  int64   `json:"count"`
	Total  float64 `json:"total"`
}

type PaymentSummary struct {
	Count    int64             `json:"count"`
	Total    float64           `json:"total"`
	ByMethod []MethodBreakdown `json:"byMethod"`
}

type AgencyReport struct {
	AgencyID     int64   `json:"agencyId"`
	AgencyName   string  `json:"agencyName"`
	Reservations int64   `json:"reservations"`
	TotalBilled  float64 `json:"totalBilled"`
	TotalPaid    float64 `json:"totalPaid"`
	Outstanding  float64 `json:"outstanding"`
}

type OfferReport struct {
	OfferID        int64   `json:"offerId"`
	Title          string  `json:"title"`
	Reservations   int64   `json:"reservations"`
	TravelerCount  int64   `json:"travelers"`
	TotalBilled    float64 `json:"totalBilled"`
	AvailableSeats int     `json:"availableSeats"`
	TotalSeats     int     `json:"totalSeats"`
}

// PaymentSummary totals approved payments over the period, with a
// per-method breakdown.
func (s *Service) PaymentSummary(ctx context.Context, p domain.Principal, period Period) (*PaymentSummary, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}

	q := s.db.WithContext(ctx).Table("payments").
		Where("status = ?", string(domain.PaymentApproved))
	if period.From != nil {
		q = q.Where("created_at >= ?", *period.From)
	}
	if period.To != nil {
		q = q.Where("created_at <= ?", *period.To)
	}

	var head struct {
		Count int64
		Total float64
	}
	if err := q.Session(&gorm.Session{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Scan(&head).Error; err != nil {
		return nil, err
	}

	var byMethod []MethodBreakdown
	if err := q.Session(&gorm.Session{}).
		Select("method, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Group("method").
		Order("total DESC").
		Scan(&byMethod).Error; err != nil {
		return nil, err
	}

	return &PaymentSummary{Count: head.Count, Total: head.Total, ByMethod: byMethod}, nil
}

// Agencies reports billed vs collected amounts per agency. Rejected
// reservations still appear: their money history is part of the ledger.
func (s *Service) Agencies(ctx context.Context, p domain.Principal) ([]AgencyReport, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}

	var out []AgencyReport
	err := s.db.WithContext(ctx).Table("reservations").
		Select(`reservations.agency_id AS agency_id,
			COALESCE(users.agency_name, users.name) AS agency_name,
			COUNT(reservations.id) AS reservations,
			COALESCE(SUM(reservations.total_price), 0) AS total_billed,
			COALESCE(SUM(reservations.montant_paye), 0) AS total_paid,
			COALESCE(SUM(reservations.reste_a_payer), 0) AS outstanding`).
		Joins("LEFT JOIN users ON users.id = reservations.agency_id").
		Group("reservations.agency_id, users.agency_name, users.name").
		Order("total_billed DESC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Offers reports fill rate and billed volume per offer.
func (s *Service) Offers(ctx context.Context, p domain.Principal) ([]OfferReport, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}

	var out []OfferReport
	err := s.db.WithContext(ctx).Table("offers").
		Select(`offers.id AS offer_id,
			offers.title AS title,
			COUNT(reservations.id) AS reservations,
			COALESCE(SUM(reservations.total_price), 0) AS total_billed,
			offers.available_seats AS available_seats,
			offers.total_seats AS total_seats`).
		Joins("LEFT JOIN reservations ON reservations.offer_id = offers.id").
		Group("offers.id, offers.title, offers.available_seats, offers.total_seats").
		Order("total_billed DESC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}

	// traveler counts live inside the clients JSON column; resolve them
	// in a second pass instead of a dialect-specific json_array_length
	for i := range out {
		var rows []struct{ Clients string }
		if err := s.db.WithContext(ctx).Table("reservations").
			Select("clients").
			Where("offer_id = ?", out[i].OfferID).
			Scan(&rows).Error; err != nil {
			return nil, err
		}
		out[i].TravelerCount = countClients(rows)
	}
	return out, nil
}

func countClients(rows []struct{ Clients string }) int64 {
	var n int64
	for _, row := range rows {
		n += int64(len(utils.FromJSONColumn[domain.Client](row.Clients)))
	}
	return n
}
