package constvars

const (
	EventAppointmentCreated       = "appointment.created"
	EventAppointmentAssigned      = "appointment.assigned"
	EventAppointmentDeclined      = "appointment.declined"
	EventAppointmentRescheduled   = "appointment.rescheduled"
	EventAppointmentCancelled     = "appointment.cancelled"
	EventAppointmentStatusChanged = "appointment.status_changed"
	EventPaymentSettled           = "payment.settled"
	EventPaymentFailed            = "payment.failed"
	EventFeedbackSubmitted        = "feedback.submitted"
)

const (
	ReceiptObjectKeyFormat = "receipts/%s/%s.json"
)
