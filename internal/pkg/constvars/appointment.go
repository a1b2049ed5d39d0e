package constvars

const (
	AppointmentStatusPendingAssignment  = "pending_assignment"
	AppointmentStatusAssigned           = "assigned"
	AppointmentStatusOnTheWay           = "on_the_way"
	AppointmentStatusArrived            = "arrived"
	AppointmentStatusServiceStarted     = "service_started"
	AppointmentStatusCompleted          = "completed"
	AppointmentStatusDeclinedByDoctor   = "declined_by_doctor"
	AppointmentStatusCancelledByPatient = "cancelled_by_patient"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

const (
	PaymentRecordStatusSuccessful = "successful"
	PaymentRecordStatusFailed     = "failed"
)

const (
	FeedbackMinRating = 1
	FeedbackMaxRating = 5
)

// Transition names reported in invalid transition errors.
const (
	TransitionAccept     = "accept"
	TransitionDecline    = "decline"
	TransitionReschedule = "reschedule"
	TransitionCancel     = "cancel"
	TransitionAdvance    = "advance"
	TransitionSettle     = "settle"
	TransitionFeedback   = "feedback"
)
