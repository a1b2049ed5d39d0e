package responses

import "homevisit-service/internal/app/models"

type Earnings struct {
	DoctorID            string                `json:"doctor_id"`
	TotalEarnings       float64               `json:"total_earnings"`
	SettledAppointments int                   `json:"settled_appointments"`
	History             []models.EarningsItem `json:"history"`
}
