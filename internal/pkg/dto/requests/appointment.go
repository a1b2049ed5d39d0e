package requests

type CreateAppointment struct {
	ServiceID         string `json:"service_id" validate:"required,uuid"`
	AddressID         string `json:"address_id" validate:"required,uuid"`
	RequestedDate     string `json:"requested_date" validate:"required,not_past_date"`
	RequestedTimeSlot string `json:"requested_time_slot" validate:"required,time_slot"`
	Notes             string `json:"notes" validate:"omitempty,max=500"`
}

type RescheduleAppointment struct {
	RequestedDate     string `json:"requested_date" validate:"required,not_past_date"`
	RequestedTimeSlot string `json:"requested_time_slot" validate:"required,time_slot"`
}

type CancelAppointment struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type DeclineAppointment struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type AdvanceAppointmentStatus struct {
	Status string `json:"status" validate:"required,oneof=on_the_way arrived service_started completed"`
}
