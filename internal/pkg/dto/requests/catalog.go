package requests

import "time"

type CreateService struct {
	ExternalID      string  `json:"external_id" validate:"omitempty,max=100"`
	Name            string  `json:"name" validate:"required,max=150"`
	Description     string  `json:"description" validate:"omitempty,max=1000"`
	Category        string  `json:"category" validate:"required,max=100"`
	BasePrice       float64 `json:"base_price" validate:"gt=0"`
	Currency        string  `json:"currency" validate:"omitempty,currency_code"`
	DurationMinutes int     `json:"duration_minutes" validate:"gt=0"`
	IsActive        *bool   `json:"is_active"`
}

type UpdateService struct {
	Name            *string  `json:"name" validate:"omitempty,min=1,max=150"`
	Description     *string  `json:"description" validate:"omitempty,max=1000"`
	Category        *string  `json:"category" validate:"omitempty,min=1,max=100"`
	BasePrice       *float64 `json:"base_price" validate:"omitempty,gt=0"`
	Currency        *string  `json:"currency" validate:"omitempty,currency_code"`
	DurationMinutes *int     `json:"duration_minutes" validate:"omitempty,gt=0"`
	IsActive        *bool    `json:"is_active"`
}

type CreateOffer struct {
	ExternalID      string     `json:"external_id" validate:"omitempty,max=100"`
	Title           string     `json:"title" validate:"required,max=150"`
	Description     string     `json:"description" validate:"omitempty,max=1000"`
	DiscountPercent float64    `json:"discount_percent" validate:"gt=0,lte=100"`
	ServiceIDs      []string   `json:"service_ids" validate:"omitempty,dive,uuid"`
	ValidFrom       *time.Time `json:"valid_from"`
	ValidUntil      *time.Time `json:"valid_until"`
	IsActive        *bool      `json:"is_active"`
}

type UpdateOffer struct {
	Title           *string    `json:"title" validate:"omitempty,min=1,max=150"`
	Description     *string    `json:"description" validate:"omitempty,max=1000"`
	DiscountPercent *float64   `json:"discount_percent" validate:"omitempty,gt=0,lte=100"`
	ServiceIDs      []string   `json:"service_ids" validate:"omitempty,dive,uuid"`
	ValidFrom       *time.Time `json:"valid_from"`
	ValidUntil      *time.Time `json:"valid_until"`
	IsActive        *bool      `json:"is_active"`
}
