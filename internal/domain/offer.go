package domain

import "time"

// PricingRule maps an age range to a base price. Rules are ordered;
// ranges may overlap and the first match wins.
type PricingRule struct {
	MinAge int     `json:"minAge"`
	MaxAge int     `json:"maxAge"`
	Price  float64 `json:"price"`
}

// RoomType is an accommodation category. PricePerPerson=true adds Price
// per occupant; false means Price is a flat room cost split evenly among
// the clients selecting this label within one reservation.
type RoomType struct {
	Label          string  `json:"label"`
	Price          float64 `json:"price"`
	Capacity       int     `json:"capacity"`
	PricePerPerson bool    `json:"pricePerPerson"`
}

type Hotel struct {
	Name  string `json:"name"`
	Stars int    `json:"stars"`
}

type DepartDate struct {
	Label      string `json:"label"`
	Date       string `json:"date"`
	DateRetour string `json:"dateRetour"`
}

type DailyProgram struct {
	Day     int    `json:"day"`
	Content string `json:"content"`
}

type CancellationPolicy struct {
	MinDaysBeforeDeparture int `json:"minDaysBeforeDeparture"`
	RefundPercent          int `json:"refundPercent"`
}

type Offer struct {
	ID                 int64                `json:"id"`
	Title              string               `json:"title" validate:"required"`
	Country            string               `json:"country,omitempty"`
	Cities             []string             `json:"cities,omitempty"`
	Hotels             []Hotel              `json:"hotels,omitempty"`
	DepartDates        []DepartDate         `json:"departDates,omitempty"`
	Description        string               `json:"description,omitempty"`
	DailyProgram       []DailyProgram       `json:"dailyProgram,omitempty"`
	Inclusions         []string             `json:"inclusions,omitempty"`
	Exclusions         []string             `json:"exclusions,omitempty"`
	PricingRules       []PricingRule        `json:"pricingRules"`
	CancellationPolicy []CancellationPolicy `json:"cancellationPolicy,omitempty"`
	TotalSeats         int                  `json:"totalSeats"`
	AvailableSeats     int                  `json:"availableSeats"`
	AlertThreshold     int                  `json:"alertThreshold"`
	ImageURL           string               `json:"imageUrl,omitempty"`
	RoomTypes          []RoomType           `json:"roomTypes"`
	CreatedBy          int64                `json:"createdBy,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
}
