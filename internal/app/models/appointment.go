package models

import "time"

type Appointment struct {
	ID                 string     `json:"id" bson:"_id"`
	PatientID          string     `json:"patient_id" bson:"patientId"`
	ServiceID          string     `json:"service_id" bson:"serviceId"`
	AddressID          string     `json:"address_id" bson:"addressId"`
	DoctorID           *string    `json:"doctor_id" bson:"doctorId"`
	RequestedDate      string     `json:"requested_date" bson:"requestedDate"`
	RequestedTimeSlot  string     `json:"requested_time_slot" bson:"requestedTimeSlot"`
	Notes              string     `json:"notes,omitempty" bson:"notes,omitempty"`
	EstimatedCost      float64    `json:"estimated_cost" bson:"estimatedCost"`
	Status             string     `json:"status" bson:"status"`
	PaymentStatus      string     `json:"payment_status" bson:"paymentStatus"`
	PaymentID          *string    `json:"payment_id" bson:"paymentId"`
	AssignedAt         *time.Time `json:"assigned_at,omitempty" bson:"assignedAt,omitempty"`
	ActualStartTime    *time.Time `json:"actual_start_time,omitempty" bson:"actualStartTime,omitempty"`
	ActualEndTime      *time.Time `json:"actual_end_time,omitempty" bson:"actualEndTime,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty" bson:"cancellationReason,omitempty"`
	DeclinedReason     string     `json:"declined_reason,omitempty" bson:"declinedReason,omitempty"`
	DeclinedBy         string     `json:"declined_by,omitempty" bson:"declinedBy,omitempty"`
	TimeModel          `bson:",inline"`
}

func (a *Appointment) IsAssignedTo(doctorID string) bool {
	return a.DoctorID != nil && *a.DoctorID == doctorID
}

type AppointmentFilter struct {
	Status string
}

// AvailableAppointment is a pending appointment enriched for doctors.
type AvailableAppointment struct {
	Appointment
	PatientName string   `json:"patient_name"`
	ServiceName string   `json:"service_name"`
	Address     *Address `json:"address"`
}
