package repository

import (
	"context"
	"time"

	"flamingo/internal/domain"
	"flamingo/internal/pkg/utils"

	"gorm.io/gorm"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// Nested offer structures are stored as JSON text columns.
type offerModel struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	Title              string    `gorm:"column:title"`
	Country            string    `gorm:"column:country"`
	Cities             string    `gorm:"column:cities;type:text"`
	Hotels             string    `gorm:"column:hotels;type:text"`
	DepartDates        string    `gorm:"column:depart_dates;type:text"`
	Description        string    `gorm:"column:description;type:text"`
	DailyProgram       string    `gorm:"column:daily_program;type:text"`
	Inclusions         string    `gorm:"column:inclusions;type:text"`
	Exclusions         string    `gorm:"column:exclusions;type:text"`
	PricingRules       string    `gorm:"column:pricing_rules;type:text"`
	CancellationPolicy string    `gorm:"column:cancellation_policy;type:text"`
	TotalSeats         int       `gorm:"column:total_seats"`
	AvailableSeats     int       `gorm:"column:available_seats"`
	AlertThreshold     int       `gorm:"column:alert_threshold"`
	ImageURL           string    `gorm:"column:image_url"`
	RoomTypes          string    `gorm:"column:room_types;type:text"`
	CreatedBy          int64     `gorm:"column:created_by"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

func (offerModel) TableName() string { return "offers" }

func toDomainOffer(m offerModel) *domain.Offer {
	return &domain.Offer{
		ID:                 m.ID,
		Title:              m.Title,
		Country:            m.Country,
		Cities:             utils.FromJSONColumn[string](m.Cities),
		Hotels:             utils.FromJSONColumn[domain.Hotel](m.Hotels),
		DepartDates:        utils.FromJSONColumn[domain.DepartDate](m.DepartDates),
		Description:        m.Description,
		DailyProgram:       utils.FromJSONColumn[domain.DailyProgram](m.DailyProgram),
		Inclusions:         utils.FromJSONColumn[string](m.Inclusions),
		Exclusions:         utils.FromJSONColumn[string](m.Exclusions),
		PricingRules:       utils.FromJSONColumn[domain.PricingRule](m.PricingRules),
		CancellationPolicy: utils.FromJSONColumn[domain.CancellationPolicy](m.CancellationPolicy),
		TotalSeats:         m.TotalSeats,
		AvailableSeats:     m.AvailableSeats,
		AlertThreshold:     m.AlertThreshold,
		ImageURL:           m.ImageURL,
		RoomTypes:          utils.FromJSONColumn[domain.RoomType](m.RoomTypes),
		CreatedBy:          m.CreatedBy,
		CreatedAt:          m.CreatedAt,
	}
}

func toOfferModel(o *domain.Offer) offerModel {
	return offerModel{
		ID:                 o.ID,
		Title:              o.Title,
		Country:            o.Country,
		Cities:             utils.ToJSONColumn(o.Cities),
		Hotels:             utils.ToJSONColumn(o.Hotels),
		DepartDates:        utils.ToJSONColumn(o.DepartDates),
		Description:        o.Description,
		DailyProgram:       utils.ToJSONColumn(o.DailyProgram),
		Inclusions:         utils.ToJSONColumn(o.Inclusions),
		Exclusions:         utils.ToJSONColumn(o.Exclusions),
		PricingRules:       utils.ToJSONColumn(o.PricingRules),
		CancellationPolicy: utils.ToJSONColumn(o.CancellationPolicy),
		TotalSeats:         o.TotalSeats,
		AvailableSeats:     o.AvailableSeats,
		AlertThreshold:     o.AlertThreshold,
		ImageURL:           o.ImageURL,
		RoomTypes:          utils.ToJSONColumn(o.RoomTypes),
		CreatedBy:          o.CreatedBy,
		CreatedAt:          o.CreatedAt,
	}
}

func (r *OfferRepository) Create(ctx context.Context, o *domain.Offer) error {
	m := toOfferModel(o)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*o = *toDomainOffer(m)
	return nil
}

func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	var m offerModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainOffer(m), nil
}

func (r *OfferRepository) List(ctx context.Context) ([]domain.Offer, error) {
	var rows []offerModel
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Offer, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainOffer(m))
	}
	return out, nil
}

func (r *OfferRepository) Update(ctx context.Context, o *domain.Offer) error {
	m := toOfferModel(o)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *OfferRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&offerModel{}, id).Error
}

// DecrementAvailableSeats takes one seat conditionally: the guard lives in
// the WHERE clause so two racing validations cannot drive the counter
// negative. Returns false when no seat was left to take.
func (r *OfferRepository) DecrementAvailableSeats(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Exec("UPDATE offers SET available_seats = available_seats - 1 WHERE id = ? AND available_seats > 0", id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}
