package models

import "time"

// EarningsSummary is the running total of a doctor's settled fee share.
type EarningsSummary struct {
	DoctorID            string     `json:"doctor_id" bson:"_id"`
	TotalDoctorFee      float64    `json:"total_doctor_fee" bson:"totalDoctorFee"`
	SettledAppointments int        `json:"settled_appointments" bson:"settledAppointments"`
	LastSettledAt       *time.Time `json:"last_settled_at,omitempty" bson:"lastSettledAt,omitempty"`
	UpdatedAt           time.Time  `json:"updated_at" bson:"updatedAt"`
}

type EarningsItem struct {
	AppointmentID   string    `json:"appointment_id"`
	PaymentID       string    `json:"payment_id"`
	ServiceID       string    `json:"service_id"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	DoctorFeeAmount float64   `json:"doctor_fee_amount"`
	TransactionDate time.Time `json:"transaction_date"`
}
