package offer

import "flamingo/internal/domain"

type CreateOfferRequest struct {
	Title              string                      `json:"title" binding:"required"`
	Country            string                      `json:"country"`
	Cities             []string                    `json:"cities"`
	Hotels             []domain.Hotel              `json:"hotels"`
	DepartDates        []domain.DepartDate         `json:"departDates"`
	Description        string                      `json:"description"`
	DailyProgram       []domain.DailyProgram       `json:"dailyProgram"`
	Inclusions         []string                    `json:"inclusions"`
	Exclusions         []string                    `json:"exclusions"`
	PricingRules       []domain.PricingRule        `json:"pricingRules"`
	CancellationPolicy []domain.CancellationPolicy `json:"cancellationPolicy"`
	TotalSeats         int                         `json:"totalSeats" binding:"gte=0"`
	AlertThreshold     int                         `json:"alertThreshold" binding:"gte=0"`
	ImageURL           string                      `json:"imageUrl"`
	RoomTypes          []domain.RoomType           `json:"roomTypes"`
}

// UpdateOfferRequest uses pointers so an absent field leaves the stored
// value alone.
type UpdateOfferRequest struct {
	Title              *string                      `json:"title"`
	Country            *string                      `json:"country"`
	Cities             *[]string                    `json:"cities"`
	Hotels             *[]domain.Hotel              `json:"hotels"`
	DepartDates        *[]domain.DepartDate         `json:"departDates"`
	Description        *string                      `json:"description"`
	DailyProgram       *[]domain.DailyProgram       `json:"dailyProgram"`
	Inclusions         *[]string                    `json:"inclusions"`
	Exclusions         *[]string                    `json:"exclusions"`
	PricingRules       *[]domain.PricingRule        `json:"pricingRules"`
	CancellationPolicy *[]domain.CancellationPolicy `json:"cancellationPolicy"`
	TotalSeats         *int                         `json:"totalSeats"`
	AlertThreshold     *int                         `json:"alertThreshold"`
	ImageURL           *string                      `json:"imageUrl"`
	RoomTypes          *[]domain.RoomType           `json:"roomTypes"`
}
