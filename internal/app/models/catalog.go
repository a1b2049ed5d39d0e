package models

import "time"

type Service struct {
	ID              string  `json:"id" bson:"_id"`
	ExternalID      string  `json:"external_id" bson:"externalId"`
	Name            string  `json:"name" bson:"name"`
	Description     string  `json:"description,omitempty" bson:"description,omitempty"`
	Category        string  `json:"category" bson:"category"`
	BasePrice       float64 `json:"base_price" bson:"basePrice"`
	Currency        string  `json:"currency" bson:"currency"`
	DurationMinutes int     `json:"duration_minutes" bson:"durationMinutes"`
	IsActive        bool    `json:"is_active" bson:"isActive"`
	TimeModel       `bson:",inline"`
}

type Offer struct {
	ID              string     `json:"id" bson:"_id"`
	ExternalID      string     `json:"external_id" bson:"externalId"`
	Title           string     `json:"title" bson:"title"`
	Description     string     `json:"description,omitempty" bson:"description,omitempty"`
	DiscountPercent float64    `json:"discount_percent" bson:"discountPercent"`
	ServiceIDs      []string   `json:"service_ids,omitempty" bson:"serviceIds,omitempty"`
	ValidFrom       *time.Time `json:"valid_from,omitempty" bson:"validFrom,omitempty"`
	ValidUntil      *time.Time `json:"valid_until,omitempty" bson:"validUntil,omitempty"`
	IsActive        bool       `json:"is_active" bson:"isActive"`
	TimeModel       `bson:",inline"`
}
